package pages

import (
	"sync"

	"github.com/avolkovs/shopdeck/internal/client/models"
	"github.com/avolkovs/shopdeck/internal/client/session"
	"github.com/avolkovs/shopdeck/internal/client/upload"
	"github.com/avolkovs/shopdeck/internal/logging"
)

// Dashboard is the standard user's view: profile plus the new-product form
// with its image-upload widget. It owns exactly one upload machine.
type Dashboard struct {
	mu          sync.Mutex
	imageURL    string
	productName string

	store   *session.Store
	machine *upload.Machine
}

func NewDashboard(uploader upload.Uploader, store *session.Store, log logging.Logger) *Dashboard {
	d := &Dashboard{store: store}
	d.machine = upload.NewMachine(uploader, d.setImageURL, log)
	return d
}

func (d *Dashboard) setImageURL(url string) {
	d.mu.Lock()
	d.imageURL = url
	d.mu.Unlock()
}

// Profile returns the logged-in user's snapshot for the header and profile
// card. The zero profile is returned when the session ended underneath us.
func (d *Dashboard) Profile() models.UserProfile {
	u, _ := d.store.CurrentUser()
	return u
}

// Upload exposes the widget's state machine.
func (d *Dashboard) Upload() *upload.Machine {
	return d.machine
}

// ImageURL returns the uploaded image URL for the listing form, or "".
func (d *Dashboard) ImageURL() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.imageURL
}

// SetProductName records the listing form's name field.
func (d *Dashboard) SetProductName(name string) {
	d.mu.Lock()
	d.productName = name
	d.mu.Unlock()
}

// ProductName returns the listing form's name field.
func (d *Dashboard) ProductName() string {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.productName
}

// Close tears the upload widget down, releasing its preview handle.
func (d *Dashboard) Close() {
	d.machine.Close()
}
