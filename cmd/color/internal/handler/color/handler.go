package color_handler

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"net"

	"github.com/google/uuid"

	"github.com/hasirciogluhq/colorserver/cmd/color/internal/core"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/logger"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/palette"
	"github.com/hasirciogluhq/colorserver/cmd/color/internal/wire"
)

var errCountOverflow = errors.New("color count cannot be incremented")

type ColorHandler struct {
	// Pick chooses the server color. Defaults to palette.Pick.
	Pick  func() string
	Stats *core.Stats
}

// HandleConnection implements core.ConnectionHandler.
// It takes full ownership of the connection lifecycle: one request, one response, close.
func (h *ColorHandler) HandleConnection(conn net.Conn) {
	defer conn.Close()

	log := logger.With("conn_id", uuid.NewString(), "remote_addr", conn.RemoteAddr().String())
	end := h.Stats.Begin()

	err := h.exchange(conn, log)
	end(err)
	if err != nil {
		log.Error("Exchange failed", "kind", core.KindOf(err).String(), "error", err)
	}
}

func (h *ColorHandler) exchange(conn net.Conn, log *slog.Logger) error {
	// 1. Await request
	rec, err := wire.Decode(conn)
	if err != nil {
		return err
	}
	log.Info("Record received",
		"user", rec.UserName,
		"color_from_client", rec.ColorSentFromClient,
		"color_count", rec.ColorCount)

	// 2. Process
	if err := Process(rec, h.pick()); err != nil {
		return err
	}

	// 3. Respond
	if err := wire.Encode(conn, rec); err != nil {
		return err
	}
	log.Info("Record sent",
		"color_from_server", rec.ColorSentFromServer,
		"color_count", rec.ColorCount)
	return nil
}

func (h *ColorHandler) pick() string {
	if h.Pick != nil {
		return h.Pick()
	}
	return palette.Pick()
}

// Process fills in the server side of rec. It performs no I/O.
func Process(rec *wire.Record, serverColor string) error {
	if rec.ColorCount == math.MaxUint64 {
		return core.NewError(core.KindInvalidRequest, "validate count", errCountOverflow)
	}
	rec.ColorSentFromServer = serverColor
	rec.ColorCount++
	rec.MessageToClient = Message(rec.UserName, rec.ColorSentFromClient)
	return nil
}

// Message is the confirmation text returned to the client.
func Message(userName, color string) string {
	return fmt.Sprintf("Thanks %s for sending the color %s", userName, color)
}
