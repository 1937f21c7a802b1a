// Package cli implements the mockhttp command.
//
// mockhttp works offline on fixture files:
//
//	mockhttp check fixtures/*.yaml
//	mockhttp resolve -f fixtures/users.yaml POST https://api.example.com/users -d '{"name":"bob"}'
//
// check validates fixtures and lists the mappings they produce. resolve
// registers the fixtures on an intercepting client, sends one request
// through it and prints the response.
package cli
