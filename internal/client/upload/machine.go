// Package upload drives a single file-to-URL upload interaction: local
// preview, in-flight request, success or failure, and release of superseded
// preview handles. One widget instance owns one Machine.
package upload

import (
	"context"
	"errors"
	"io"
	"os"
	"sync"

	"github.com/google/uuid"

	"github.com/avolkovs/shopdeck/internal/logging"
)

// failedMessage is the user-visible text for any upload failure.
const failedMessage = "Failed to upload image"

// newPreviewFn is a test seam for preview creation.
var newPreviewFn = NewPreview

// Phase is the current position in the upload lifecycle.
type Phase int

const (
	PhaseIdle Phase = iota
	PhasePreviewReady
	PhaseUploading
	PhaseSucceeded
	PhaseFailed
)

func (p Phase) String() string {
	switch p {
	case PhaseIdle:
		return "idle"
	case PhasePreviewReady:
		return "preview"
	case PhaseUploading:
		return "uploading"
	case PhaseSucceeded:
		return "succeeded"
	case PhaseFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Uploader sends the image and returns the remote URL. The API client
// satisfies this.
type Uploader interface {
	Upload(ctx context.Context, filename string, body io.Reader) (string, error)
}

// State is a snapshot of the machine for the view layer.
type State struct {
	Phase     Phase
	Preview   *Preview
	RemoteURL string
	Err       string
}

// Machine is the upload state machine.
//
// Selecting a new file is allowed in any phase and supersedes whatever came
// before: the previous preview handle is released, and a previous in-flight
// request is orphaned; its eventual response is discarded by comparing task
// handles, so a stale response can never overwrite newer state.
type Machine struct {
	mu        sync.Mutex
	phase     Phase
	preview   *Preview
	remoteURL string
	errMsg    string
	task      uuid.UUID

	uploader Uploader
	onUpload func(url string)
	log      logging.Logger
}

// NewMachine builds a machine in the Idle phase. onUpload, if non-nil, is
// invoked with the remote URL after a successful upload.
func NewMachine(uploader Uploader, onUpload func(url string), log logging.Logger) *Machine {
	return &Machine{uploader: uploader, onUpload: onUpload, log: log}
}

// Select creates a local preview for the file at path, synchronously and
// with no network involved, and moves to PreviewReady. Any prior preview is
// released and any in-flight upload is orphaned. On error the machine is
// left unchanged.
func (m *Machine) Select(path string) error {
	p, err := newPreviewFn(path)
	if err != nil {
		return err
	}

	m.mu.Lock()
	old := m.preview
	m.preview = p
	m.phase = PhasePreviewReady
	m.remoteURL = ""
	m.errMsg = ""
	m.task = uuid.New()
	m.mu.Unlock()

	if old != nil {
		old.Release()
	}
	return nil
}

// Start issues the upload for the current preview. Valid from PreviewReady
// and from Failed (explicit re-submit; there is no automatic retry). The
// returned channel closes when this attempt's outcome has been applied or
// discarded.
func (m *Machine) Start(ctx context.Context) (<-chan struct{}, error) {
	m.mu.Lock()
	if m.phase != PhasePreviewReady && m.phase != PhaseFailed {
		m.mu.Unlock()
		return nil, errors.New("no image selected")
	}
	m.phase = PhaseUploading
	m.errMsg = ""
	task := uuid.New()
	m.task = task
	preview := m.preview
	m.mu.Unlock()

	done := make(chan struct{})
	go func() {
		defer close(done)

		var url string
		f, err := os.Open(preview.Path)
		if err == nil {
			url, err = m.uploader.Upload(ctx, preview.Name, f)
			_ = f.Close()
		}
		m.finish(ctx, task, url, err)
	}()
	return done, nil
}

// finish applies an upload outcome, unless the machine has moved on to a
// newer selection or attempt since the request was issued.
func (m *Machine) finish(ctx context.Context, task uuid.UUID, url string, err error) {
	m.mu.Lock()
	if task != m.task {
		m.mu.Unlock()
		m.log.Warn(ctx, "discarding stale upload response")
		return
	}

	var cb func(string)
	if err != nil {
		m.phase = PhaseFailed
		m.errMsg = failedMessage
	} else {
		m.phase = PhaseSucceeded
		m.remoteURL = url
		cb = m.onUpload
	}
	m.mu.Unlock()

	if err != nil {
		m.log.Error(ctx, "image upload failed", "error", err)
		return
	}
	if cb != nil {
		cb(url)
	}
}

// State returns a snapshot for rendering. The preview stays visible in both
// the Succeeded and Failed phases.
func (m *Machine) State() State {
	m.mu.Lock()
	defer m.mu.Unlock()
	return State{Phase: m.phase, Preview: m.preview, RemoteURL: m.remoteURL, Err: m.errMsg}
}

// Busy reports whether an upload is in flight.
func (m *Machine) Busy() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.phase == PhaseUploading
}

// Close tears the widget down: the preview handle is released and any
// in-flight response will be discarded.
func (m *Machine) Close() {
	m.mu.Lock()
	p := m.preview
	m.preview = nil
	m.phase = PhaseIdle
	m.task = uuid.New()
	m.mu.Unlock()

	if p != nil {
		p.Release()
	}
}
