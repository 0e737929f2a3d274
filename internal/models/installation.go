package models

import "time"

// InstallationType identifies the kind of installation job performed for
// a client.
type InstallationType string

// Supported installation types.
const (
	InstallationStarlink   InstallationType = "STARLINK"
	InstallationCCTV       InstallationType = "CCTV"
	InstallationNetworking InstallationType = "NETWORKING"
	InstallationSolar      InstallationType = "SOLAR"
)

var installationTypeLabels = map[InstallationType]string{
	InstallationStarlink:   "Starlink Installation",
	InstallationCCTV:       "CCTV Installation",
	InstallationNetworking: "Networking Installation",
	InstallationSolar:      "Solar Installation",
}

// Label returns the human-readable name of the installation type.
func (t InstallationType) Label() string {
	if label, ok := installationTypeLabels[t]; ok {
		return label
	}
	return string(t)
}

// Valid reports whether t is one of the supported installation types.
func (t InstallationType) Valid() bool {
	_, ok := installationTypeLabels[t]
	return ok
}

// Installation is a history record of a completed installation job.
// Invoice holds a reference to the stored invoice document (empty when
// none was attached); the upload storage itself lives outside this
// service.
type Installation struct {
	ID               int
	Name             string
	Contact          string
	Email            string
	InstallationType InstallationType
	InstallationDate time.Time
	Invoice          string
	Notes            string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// DummyInstallation receives installation data from a JSON request
// before validation. The installation type defaults to STARLINK when
// omitted, matching the add-form default.
type DummyInstallation struct {
	Name             string `json:"name" validate:"required"`
	Contact          string `json:"contact" validate:"required,phone"`
	Email            string `json:"email" validate:"required,email"`
	InstallationType string `json:"installation_type" validate:"omitempty,oneof=STARLINK CCTV NETWORKING SOLAR"`
	InstallationDate string `json:"installation_date" validate:"required,datetime=2006-01-02"`
	Invoice          string `json:"invoice,omitempty"`
	Notes            string `json:"notes,omitempty"`
}

// InstallationCounts aggregates the per-type totals for the dashboard
// and the installation list view.
type InstallationCounts struct {
	Total      int `json:"total"`
	Starlink   int `json:"starlink"`
	CCTV       int `json:"cctv"`
	Networking int `json:"networking"`
	Solar      int `json:"solar"`
}
