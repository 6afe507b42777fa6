// Package client provides a more convenient wrapper around the redigo client
// for talking to the passphrase service.
package client

import (
	"fmt"
	"net"
	"strconv"

	"github.com/gomodule/redigo/redis"
)

// Request describes the passphrases to generate. The zero Request asks for
// one passphrase from the server's default list at the default strength,
// with no separator between words.
type Request struct {
	List      string  // single-letter list code, or "custom"
	Words     int     // exact word count
	Entropy   float64 // minimum entropy in bits
	Strength  int     // strength level, 20 bits per level above 80
	Separator string  // literal, or one of _n, _s, _b
	TitleCase bool
	Count     int
}

func (r Request) args(withOutput bool) []any {
	var args []any
	if r.List != "" {
		args = append(args, "LIST", r.List)
	}
	if r.Words > 0 {
		args = append(args, "WORDS", r.Words)
	}
	if r.Entropy > 0 {
		args = append(args, "ENTROPY", strconv.FormatFloat(r.Entropy, 'f', -1, 64))
	}
	if r.Strength > 0 {
		args = append(args, "STRENGTH", r.Strength)
	}
	if !withOutput {
		return args
	}
	args = append(args, "SEP", r.Separator)
	if r.TitleCase {
		args = append(args, "TITLE")
	}
	if r.Count > 0 {
		args = append(args, "COUNT", r.Count)
	}
	return args
}

// Client is a type-safe, lower-boilerplate wrapper around the redigo client.
//
// Clients are not safe for concurrent use.
type Client struct {
	conn    redis.Conn
	connErr error
}

// New creates a new Client.
func New(addr net.Addr) (*Client, error) {
	conn, err := redis.Dial("tcp", addr.String())
	if err != nil {
		return nil, fmt.Errorf("dial: %w", err)
	}
	return &Client{conn: conn}, nil
}

// do sends a command and marks the client unusable if the connection broke.
func (c *Client) do(cmd string, args ...any) (any, error) {
	if c.connErr != nil {
		return nil, fmt.Errorf("conn unusable: %w", c.connErr)
	}
	res, err := c.conn.Do(cmd, args...)
	if connErr := c.conn.Err(); connErr != nil {
		c.connErr = connErr
		_ = c.conn.Close()
		return nil, fmt.Errorf("conn unusable: %w", connErr)
	}
	return res, err
}

// Ping the service.
func (c *Client) Ping() error {
	r, err := redis.String(c.do("PING"))
	if err != nil {
		return err
	}
	if r != "PONG" {
		return fmt.Errorf("unexpected ping response: %s", r)
	}
	return nil
}

// Lists describes the bundled word lists, one "<code> <length> <name>" entry
// per list.
func (c *Client) Lists() ([]string, error) {
	return redis.Strings(c.do("LISTS"))
}

// Generate asks the service for passphrases.
func (c *Client) Generate(req Request) ([]string, error) {
	return redis.Strings(c.do("GENERATE", req.args(true)...))
}

// Entropy asks the service how many words req needs and how many bits of
// entropy they carry. Output-only fields of req are ignored.
func (c *Client) Entropy(req Request) (int, float64, error) {
	r, err := redis.String(c.do("ENTROPY", req.args(false)...))
	if err != nil {
		return 0, 0, err
	}
	var words int
	var bits float64
	if _, err := fmt.Sscanf(r, "%d %f", &words, &bits); err != nil {
		return 0, 0, fmt.Errorf("unexpected entropy response %q: %w", r, err)
	}
	return words, bits, nil
}

// Close the underlying connection.
func (c *Client) Close() error {
	if c.connErr != nil {
		return fmt.Errorf("conn unusable: %w", c.connErr)
	}
	if err := c.conn.Close(); err != nil {
		c.connErr = err
		return err
	}
	return nil
}
