package client

import (
	"context"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/wire"
)

// QuitToken ends an interactive session when it appears anywhere in the input.
const QuitToken = "quit"

// IsQuit reports whether an input line asks to end the session.
func IsQuit(line string) bool {
	return strings.Contains(line, QuitToken)
}

// LedgerEntry records the colors of one completed exchange.
type LedgerEntry struct {
	Sent     string
	Received string
}

// Session is one user's sequence of exchanges. It is not safe for concurrent use.
type Session struct {
	UserName string

	client *Client
	count  uint64
	ledger []LedgerEntry
}

func NewSession(c *Client, userName string) *Session {
	return &Session{UserName: userName, client: c}
}

// Send performs one exchange. On success the session count becomes the count the
// server returned; the server's value is authoritative.
func (s *Session) Send(ctx context.Context, color string) (*wire.Record, error) {
	resp, err := s.client.Exchange(ctx, s.UserName, color, s.count)
	if err != nil {
		return nil, err
	}
	s.count = resp.ColorCount
	s.ledger = append(s.ledger, LedgerEntry{
		Sent:     resp.ColorSentFromClient,
		Received: resp.ColorSentFromServer,
	})
	return resp, nil
}

// Count is the last count returned by the server.
func (s *Session) Count() uint64 { return s.count }

func (s *Session) Ledger() []LedgerEntry { return slices.Clone(s.ledger) }

// WriteSummary prints the transaction count and one ledger line per exchange.
func (s *Session) WriteSummary(w io.Writer) error {
	if _, err := fmt.Fprintf(w, "%s, You completed %d color transactions\n", s.UserName, s.count); err != nil {
		return err
	}
	for i, e := range s.ledger {
		if _, err := fmt.Fprintf(w, "Transaction: %d, Color Sent: %s, Color Received: %s\n", i+1, e.Sent, e.Received); err != nil {
			return err
		}
	}
	return nil
}
