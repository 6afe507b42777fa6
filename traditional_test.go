package main_test

import (
	"strings"
	"testing"

	"go.akshayshah.org/attest"

	"github.com/sts10/phraze/internal/client"
	"github.com/sts10/phraze/internal/server"
	"github.com/sts10/phraze/internal/servertest"
)

func TestTraditional(t *testing.T) {
	// This is a traditional, example-based integration test: it doesn't use
	// property-based testing.
	clients := servertest.NewServer(t, server.Config{}, 1 /* num clients */)
	c := clients[0]

	// PING == PONG
	attest.Ok(t, c.Ping())

	// ENTROPY == 7 words, 91 bits on the default list
	words, bits, err := c.Entropy(client.Request{})
	attest.Ok(t, err)
	attest.Equal(t, words, 7)
	attest.Equal(t, bits, 91.0)

	// GENERATE SEP - COUNT 3 == three seven-word passphrases
	got, err := c.Generate(client.Request{Separator: "-", Count: 3})
	attest.Ok(t, err)
	attest.Equal(t, len(got), 3)
	for _, p := range got {
		attest.Equal(t, len(strings.Split(p, "-")), 7)
	}

	// GENERATE LIST nope == ERR
	_, err = c.Generate(client.Request{List: "nope"})
	attest.True(t, err != nil)
}
