// Package messaging carries requests from one-shot commands to a running
// overlay. A message is a JSON file dropped into the inbox directory; the
// overlay watches that directory, consumes each file and deletes it.
package messaging

import (
	"errors"
	"fmt"
	"io/fs"
	"math"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"

	"github.com/bytedance/sonic"
	"github.com/penwyp/yt-slicer/internal/core/model"
	"github.com/penwyp/yt-slicer/internal/core/monitoring"
	"github.com/penwyp/yt-slicer/internal/util"
)

const (
	// DirName is the inbox directory under the data dir
	DirName = "inbox"

	messageExt   = ".json"
	listenerFile = ".listening"
)

var (
	// ErrNoListener means no overlay is consuming the inbox, so a sent
	// message would have no effect
	ErrNoListener = errors.New("no overlay is running")
	// ErrInvalidMessage is returned for messages an overlay would ignore
	ErrInvalidMessage = errors.New("invalid message")
)

var log = util.Named("messaging")

// Validate checks that msg is a well-formed jump request
func Validate(msg model.Message) error {
	if msg.Type != model.MessageTypeJumpToTime {
		return fmt.Errorf("%w: unknown type %q", ErrInvalidMessage, msg.Type)
	}
	if msg.Payload == nil {
		return fmt.Errorf("%w: missing payload", ErrInvalidMessage)
	}
	t := msg.Payload.TimeSeconds
	if math.IsNaN(t) || math.IsInf(t, 0) || t < 0 {
		return fmt.Errorf("%w: timeSeconds must be a non-negative number", ErrInvalidMessage)
	}
	return nil
}

// Send drops msg into the inbox under dir. It fails with ErrNoListener when
// no overlay has the inbox open.
func Send(dir string, msg model.Message) (string, error) {
	if err := Validate(msg); err != nil {
		return "", err
	}
	if _, err := os.Stat(filepath.Join(dir, listenerFile)); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", ErrNoListener
		}
		return "", err
	}

	data, err := sonic.Marshal(msg)
	if err != nil {
		return "", fmt.Errorf("failed to encode message: %w", err)
	}

	name := strconv.FormatInt(time.Now().UnixNano(), 10) + "-" + strconv.Itoa(os.Getpid()) + messageExt
	path := filepath.Join(dir, name)

	// Written under a temporary name so the watcher never sees a partial file
	tmp, err := os.CreateTemp(dir, ".msg-*.tmp")
	if err != nil {
		return "", err
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return "", err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		os.Remove(tmp.Name())
		return "", err
	}

	log.Debugf("Sent %s message to %s", msg.Type, path)
	return path, nil
}

// Inbox consumes messages dropped into a directory
type Inbox struct {
	dir      string
	watcher  *monitoring.FileWatcher
	messages chan model.Message
	done     chan struct{}
	wg       sync.WaitGroup
	once     sync.Once
}

// Open starts listening on dir. Messages left over from an earlier session
// are discarded.
func Open(dir string) (*Inbox, error) {
	watcher, err := monitoring.NewFileWatcher([]string{dir}, monitoring.ByExtension(messageExt))
	if err != nil {
		return nil, fmt.Errorf("failed to watch inbox: %w", err)
	}

	in := &Inbox{
		dir:      dir,
		watcher:  watcher,
		messages: make(chan model.Message, 16),
		done:     make(chan struct{}),
	}

	in.purge()
	marker := strconv.Itoa(os.Getpid()) + "\n"
	if err := os.WriteFile(filepath.Join(dir, listenerFile), []byte(marker), 0644); err != nil {
		watcher.Close()
		return nil, fmt.Errorf("failed to register inbox listener: %w", err)
	}

	in.wg.Add(1)
	go in.run()

	log.Info("Inbox listening", util.F("dir", dir))
	return in, nil
}

// Messages delivers valid messages in arrival order
func (in *Inbox) Messages() <-chan model.Message {
	return in.messages
}

func (in *Inbox) run() {
	defer in.wg.Done()
	defer close(in.messages)

	for {
		select {
		case <-in.done:
			return
		case event, ok := <-in.watcher.Events():
			if !ok {
				return
			}
			msg, ok := in.consume(event.Path)
			if !ok {
				continue
			}
			select {
			case in.messages <- msg:
			case <-in.done:
				return
			}
		}
	}
}

// consume reads and deletes one message file. Duplicate events for a file
// already consumed find nothing and are skipped.
func (in *Inbox) consume(path string) (model.Message, bool) {
	var msg model.Message

	data, err := os.ReadFile(path)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Warnf("Failed to read message %s: %v", path, err)
		}
		return msg, false
	}
	if err := os.Remove(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		log.Warnf("Failed to remove message %s: %v", path, err)
	}

	if err := sonic.Unmarshal(data, &msg); err != nil {
		log.Warnf("Dropping undecodable message %s: %v", path, err)
		return msg, false
	}
	if err := Validate(msg); err != nil {
		log.Warnf("Dropping message %s: %v", path, err)
		return msg, false
	}
	return msg, true
}

func (in *Inbox) purge() {
	entries, err := os.ReadDir(in.dir)
	if err != nil {
		return
	}
	for _, entry := range entries {
		if !entry.IsDir() && filepath.Ext(entry.Name()) == messageExt {
			os.Remove(filepath.Join(in.dir, entry.Name()))
		}
	}
}

// Close stops listening and unregisters the listener
func (in *Inbox) Close() error {
	var err error
	in.once.Do(func() {
		close(in.done)
		err = in.watcher.Close()
		in.wg.Wait()
		if rmErr := os.Remove(filepath.Join(in.dir, listenerFile)); rmErr != nil && !errors.Is(rmErr, fs.ErrNotExist) && err == nil {
			err = rmErr
		}
	})
	return err
}
