// Package fixture loads mappings from YAML files.
//
// A fixture file holds a single fixture or a list of them:
//
//	- name: create-user
//	  request:
//	    method: POST
//	    url: https://api.example.com/users
//	    jsonPath:
//	      $.name: alice
//	  response:
//	    status: 201
//	    json: {id: 7, name: alice}
//
//	- name: local-files
//	  request:
//	    urlPattern: ^file://
//	  passthrough: true
//
// Files are expanded for ${VAR} and ${VAR:-default} references, validated
// against a JSON Schema, and decoded. Apply registers the result on any
// mapping.Scope, in file order.
package fixture
