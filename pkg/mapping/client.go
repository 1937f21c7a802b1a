package mapping

import "net/http"

// Client is an *http.Client whose requests are answered by mappings.
// Mappings registered on the Client are local to it and take precedence
// over the mappings of its registry.
//
//	c := mapping.NewClient()
//	c.Map("http://api.example.com/health", mapping.Status(http.StatusNoContent))
//	resp, err := c.Get("http://api.example.com/health")
type Client struct {
	*http.Client
	interceptor *Transport
}

// NewClient creates a Client with its own Transport.
func NewClient(opts ...Option) *Client {
	t := NewTransport(opts...)
	return &Client{
		Client:      &http.Client{Transport: t},
		interceptor: t,
	}
}

// Map implements Scope.
func (c *Client) Map(request, response interface{}) (int, error) {
	return c.interceptor.Map(request, response)
}

// MapPassthrough implements Scope.
func (c *Client) MapPassthrough(request interface{}) (int, error) {
	return c.interceptor.MapPassthrough(request)
}

// Unmap implements Scope.
func (c *Client) Unmap(index int) bool {
	return c.interceptor.Unmap(index)
}

// UnmapAll implements Scope.
func (c *Client) UnmapAll() {
	c.interceptor.UnmapAll()
}

// Interceptor returns the Transport serving this client.
func (c *Client) Interceptor() *Transport {
	return c.interceptor
}

// Calls returns the requests this client has sent, oldest first.
func (c *Client) Calls() []Call {
	return c.interceptor.Journal().Calls()
}

var _ Scope = (*Client)(nil)
