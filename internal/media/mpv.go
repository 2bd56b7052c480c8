package media

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"net"
	"os"
	"os/exec"
	"path/filepath"
	"sync"
	"time"

	"github.com/goccy/go-json"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/sethvargo/go-retry"
	"github.com/tidwall/gjson"
)

// mpv process and IPC settings
const (
	MPVReplyTimeout  = 2 * time.Second
	MPVDialAttempts  = 40
	MPVDialInterval  = 50 * time.Millisecond
	MPVWindowTitle   = "yt-jukebox video"
	mpvSuccess       = "success"
	mpvUnavailable   = "property unavailable"
	mpvEventEndFile  = "end-file"
	mpvEndReasonEOF  = "eof"
	mpvSocketPattern = "yt-jukebox-mpv-%s.sock"
)

var errClosed = errors.New("video player closed")

// VideoClock drives an mpv process over its JSON IPC socket. mpv is started
// muted; its window is the video surface.
type VideoClock struct {
	bin string

	mu      sync.Mutex
	conn    net.Conn
	cmd     *exec.Cmd
	socket  string
	nextID  int64
	pending map[int64]chan gjson.Result
	onEnd   func()
	closed  bool

	log zerolog.Logger
}

// NewVideoClock creates a clock for the mpv executable at bin
func NewVideoClock(bin string, log zerolog.Logger) *VideoClock {
	return &VideoClock{
		bin:     bin,
		pending: make(map[int64]chan gjson.Result),
		log:     log.With().Str("component", "video").Logger(),
	}
}

// SetOnEnd registers a callback for natural end of a video. It runs on the
// IPC reader goroutine.
func (v *VideoClock) SetOnEnd(fn func()) {
	v.mu.Lock()
	v.onEnd = fn
	v.mu.Unlock()
}

// Start launches mpv idle and connects to its socket.
func (v *VideoClock) Start(ctx context.Context) error {
	socket := filepath.Join(os.TempDir(), fmt.Sprintf(mpvSocketPattern, uuid.NewString()))
	cmd := exec.Command(v.bin,
		"--idle=yes",
		"--mute=yes",
		"--pause=yes",
		"--force-window=yes",
		"--no-terminal",
		"--title="+MPVWindowTitle,
		"--input-ipc-server="+socket,
	)
	if err := cmd.Start(); err != nil {
		return fmt.Errorf("start mpv: %w", err)
	}

	var conn net.Conn
	backoff := retry.WithMaxRetries(MPVDialAttempts, retry.NewConstant(MPVDialInterval))
	err := retry.Do(ctx, backoff, func(ctx context.Context) error {
		c, err := net.Dial("unix", socket)
		if err != nil {
			return retry.RetryableError(err)
		}
		conn = c
		return nil
	})
	if err != nil {
		_ = cmd.Process.Kill()
		_ = cmd.Wait()
		return fmt.Errorf("connect mpv ipc: %w", err)
	}

	v.mu.Lock()
	v.cmd = cmd
	v.socket = socket
	v.mu.Unlock()
	v.attach(conn)

	v.log.Info().Str("socket", socket).Msg("mpv started")
	return nil
}

// attach binds an IPC connection and starts reading from it
func (v *VideoClock) attach(conn net.Conn) {
	v.mu.Lock()
	v.conn = conn
	v.closed = false
	v.mu.Unlock()
	go v.readLoop(conn)
}

func (v *VideoClock) readLoop(conn net.Conn) {
	scanner := bufio.NewScanner(conn)
	for scanner.Scan() {
		line := scanner.Bytes()
		msg := gjson.ParseBytes(line)

		if id := msg.Get("request_id"); id.Exists() {
			v.mu.Lock()
			ch, ok := v.pending[id.Int()]
			delete(v.pending, id.Int())
			v.mu.Unlock()
			if ok {
				ch <- msg
			}
			continue
		}

		if msg.Get("event").String() == mpvEventEndFile && msg.Get("reason").String() == mpvEndReasonEOF {
			v.mu.Lock()
			fn := v.onEnd
			v.mu.Unlock()
			if fn != nil {
				fn()
			}
		}
	}

	v.mu.Lock()
	v.closed = true
	for id, ch := range v.pending {
		close(ch)
		delete(v.pending, id)
	}
	v.mu.Unlock()
}

// command sends one IPC command and waits for its reply
func (v *VideoClock) command(args ...any) (gjson.Result, error) {
	v.mu.Lock()
	if v.conn == nil || v.closed {
		v.mu.Unlock()
		return gjson.Result{}, errClosed
	}
	v.nextID++
	id := v.nextID
	ch := make(chan gjson.Result, 1)
	v.pending[id] = ch
	conn := v.conn
	v.mu.Unlock()

	payload, err := json.Marshal(map[string]any{"command": args, "request_id": id})
	if err != nil {
		v.forget(id)
		return gjson.Result{}, err
	}
	if _, err := conn.Write(append(payload, '\n')); err != nil {
		v.forget(id)
		return gjson.Result{}, fmt.Errorf("write mpv ipc: %w", err)
	}

	select {
	case reply, ok := <-ch:
		if !ok {
			return gjson.Result{}, errClosed
		}
		if status := reply.Get("error").String(); status != mpvSuccess {
			return reply, fmt.Errorf("mpv %v: %s", args[0], status)
		}
		return reply, nil
	case <-time.After(MPVReplyTimeout):
		v.forget(id)
		return gjson.Result{}, fmt.Errorf("mpv %v: no reply", args[0])
	}
}

func (v *VideoClock) forget(id int64) {
	v.mu.Lock()
	delete(v.pending, id)
	v.mu.Unlock()
}

// Load replaces the current file, staying paused
func (v *VideoClock) Load(path string) error {
	if _, err := v.command("set_property", "pause", true); err != nil {
		return err
	}
	_, err := v.command("loadfile", path, "replace")
	return err
}

// Play unpauses
func (v *VideoClock) Play() error {
	_, err := v.command("set_property", "pause", false)
	return err
}

// Pause pauses
func (v *VideoClock) Pause() error {
	_, err := v.command("set_property", "pause", true)
	return err
}

// Position returns time-pos. While a file is still opening mpv reports the
// property unavailable, which reads as 0.
func (v *VideoClock) Position() (time.Duration, error) {
	reply, err := v.command("get_property", "time-pos")
	if err != nil {
		if reply.Get("error").String() == mpvUnavailable {
			return 0, nil
		}
		return 0, err
	}
	return time.Duration(reply.Get("data").Float() * float64(time.Second)), nil
}

// Seek sets time-pos
func (v *VideoClock) Seek(pos time.Duration) error {
	_, err := v.command("set_property", "time-pos", pos.Seconds())
	return err
}

// Close quits mpv and removes its socket
func (v *VideoClock) Close() error {
	_, _ = v.command("quit")

	v.mu.Lock()
	conn, cmd, socket := v.conn, v.cmd, v.socket
	v.conn, v.cmd = nil, nil
	v.mu.Unlock()

	var errs []error
	if conn != nil {
		errs = append(errs, conn.Close())
	}
	if cmd != nil {
		if err := cmd.Wait(); err != nil {
			var exitErr *exec.ExitError
			if !errors.As(err, &exitErr) {
				errs = append(errs, err)
			}
		}
	}
	if socket != "" {
		_ = os.Remove(socket)
	}
	return errors.Join(errs...)
}
