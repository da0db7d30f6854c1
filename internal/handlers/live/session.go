package live

import (
	"sync"
	"time"

	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

// conn is the part of *websocket.Conn a session uses.
type conn interface {
	ReadMessage() (messageType int, p []byte, err error)
	WriteMessage(messageType int, data []byte) error
	SetWriteDeadline(t time.Time) error
	Close() error
}

type session struct {
	id   string
	conn conn
	send chan []byte
	done chan struct{}
	once sync.Once
}

func newSession(id string, conn conn, bufferSize int) *session {
	return &session{
		id:   id,
		conn: conn,
		send: make(chan []byte, max(bufferSize, 1)),
		done: make(chan struct{}),
	}
}

// enqueue never blocks. It reports false when the session is closed or too far behind.
func (s *session) enqueue(msg []byte) bool {
	select {
	case <-s.done:
		return false
	default:
	}

	select {
	case s.send <- msg:
		return true
	default:
		return false
	}
}

func (s *session) close() {
	s.once.Do(func() {
		close(s.done)

		if err := s.conn.Close(); err != nil {
			log.Debug().Err(err).Str("session", s.id).Msg("closing live session")
		}
	})
}

func (s *session) writeLoop(writeWait time.Duration) {
	defer s.close()

	for {
		select {
		case <-s.done:
			return
		case msg := <-s.send:
			if err := s.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				return
			}

			if err := s.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
				log.Debug().Err(err).Str("session", s.id).Msg("live session write failed")

				return
			}
		}
	}
}

// readLoop discards client frames and returns once the peer goes away.
func (s *session) readLoop() {
	defer s.close()

	for {
		if _, _, err := s.conn.ReadMessage(); err != nil {
			return
		}
	}
}
