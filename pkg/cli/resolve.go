package cli

import (
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/getmockd/mockhttp/pkg/cli/internal/flags"
	"github.com/getmockd/mockhttp/pkg/cli/internal/parse"
	"github.com/getmockd/mockhttp/pkg/fixture"
	"github.com/getmockd/mockhttp/pkg/mapping"
)

// resolvedResponse is the JSON form of resolve output.
type resolvedResponse struct {
	Status      int                 `json:"status"`
	Headers     map[string][]string `json:"headers"`
	Body        string              `json:"body"`
	Origin      string              `json:"origin"`
	Index       int                 `json:"index"`
	Passthrough bool                `json:"passthrough,omitempty"`
	CallID      string              `json:"callId"`
}

type resolveOptions struct {
	fixtures       flags.StringSlice
	headers        flags.StringSlice
	data           string
	prepareHeaders bool
}

func newResolveCommand(g *globals) *cobra.Command {
	opts := &resolveOptions{}

	cmd := &cobra.Command{
		Use:   "resolve METHOD URL",
		Short: "Send one request through the fixtures and print the response",
		Long: `Send one request through the fixtures and print the response.

The fixtures are registered on an intercepting client in file order. Only
passthrough fixtures reach the network (or the filesystem for file://
URLs); a request no fixture matches gets a 404 with an empty body.`,
		Example: `  mockhttp resolve -f fixtures/users.yaml GET https://api.example.com/users

  mockhttp resolve -f fixtures/users.yaml POST https://api.example.com/users \
    -H 'Content-Type: application/json' -d '{"name":"bob"}'`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runResolve(cmd, g, opts, args[0], args[1])
		},
	}

	cmd.Flags().VarP(&opts.fixtures, "fixtures", "f", "Fixture file or glob (repeatable)")
	cmd.Flags().VarP(&opts.headers, "header", "H", "Request header as 'Name: value' (repeatable)")
	cmd.Flags().StringVarP(&opts.data, "data", "d", "", "Request body")
	cmd.Flags().BoolVar(&opts.prepareHeaders, "prepare-headers", false, "Add default client headers before comparing exact-request fixtures")
	return cmd
}

func runResolve(cmd *cobra.Command, g *globals, opts *resolveOptions, method, url string) error {
	fixtures, err := g.loadFixtures(opts.fixtures)
	if err != nil {
		return err
	}

	header, err := parse.Headers(opts.headers)
	if err != nil {
		return err
	}

	prepare := g.cfg.Prepare()
	if cmd.Flags().Changed("prepare-headers") {
		prepare = opts.prepareHeaders
	}

	registry := mapping.NewRegistry(mapping.WithLogger(g.logger), mapping.WithPrepareHeaders(prepare))
	client := mapping.NewClient(mapping.WithLogger(g.logger), mapping.WithRegistry(registry))
	client.CheckRedirect = func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}
	defer client.Interceptor().CloseIdleConnections()

	if _, err := fixture.Apply(client, fixtures); err != nil {
		return err
	}

	var body io.Reader
	if opts.data != "" {
		body = strings.NewReader(opts.data)
	}
	req, err := http.NewRequestWithContext(cmd.Context(), strings.ToUpper(method), url, body)
	if err != nil {
		return fmt.Errorf("building request: %w", err)
	}
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("reading response body: %w", err)
	}

	result := resolvedResponse{
		Status:  resp.StatusCode,
		Headers: resp.Header,
		Body:    string(respBody),
		Origin:  string(mapping.OriginNone),
		Index:   -1,
	}
	if calls := client.Calls(); len(calls) > 0 {
		last := calls[len(calls)-1]
		result.Origin = string(last.Origin)
		result.Index = last.Index
		result.Passthrough = last.Passthrough
		result.CallID = last.ID
	}
	g.logger.Info("request resolved",
		"method", req.Method, "url", url,
		"status", result.Status, "origin", result.Origin, "index", result.Index)

	out := cmd.OutOrStdout()
	return g.printResult(out, result, func() error {
		return writeResponse(out, resp, respBody)
	})
}

// writeResponse prints a response in wire-like form: status line, sorted
// headers, a blank line and the body.
func writeResponse(w io.Writer, resp *http.Response, body []byte) error {
	proto := resp.Proto
	if proto == "" {
		proto = "HTTP/1.1"
	}
	status := resp.Status
	if status == "" {
		status = fmt.Sprintf("%d %s", resp.StatusCode, http.StatusText(resp.StatusCode))
	}
	if _, err := fmt.Fprintf(w, "%s %s\n", proto, status); err != nil {
		return err
	}

	names := make([]string, 0, len(resp.Header))
	for k := range resp.Header {
		names = append(names, k)
	}
	sort.Strings(names)
	for _, k := range names {
		for _, v := range resp.Header[k] {
			fmt.Fprintf(w, "%s: %s\n", k, v)
		}
	}

	if _, err := fmt.Fprintln(w); err != nil {
		return err
	}
	if len(body) > 0 {
		if _, err := w.Write(body); err != nil {
			return err
		}
		if body[len(body)-1] != '\n' {
			_, err := fmt.Fprintln(w)
			return err
		}
	}
	return nil
}
