// Package api implements the client for the document-management REST backend.
package api

import (
	"bytes"
	"fmt"
	"strconv"
)

// Flag is a boolean that tolerates the backend's mixed encodings.
// Depending on the resource, the active flag arrives as true/false,
// "true"/"false", or 0/1; Flag decodes all of them and always encodes
// as a plain JSON boolean.
type Flag bool

// UnmarshalJSON accepts true/false, 0/1, and their quoted forms.
func (f *Flag) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "true", "1":
		*f = true
	case "false", "0", "null":
		*f = false
	default:
		return fmt.Errorf("invalid flag value %q", s)
	}
	return nil
}

// MarshalJSON always encodes as a JSON boolean.
func (f Flag) MarshalJSON() ([]byte, error) {
	return []byte(strconv.FormatBool(bool(f))), nil
}

// Bool returns the flag as a plain bool.
func (f Flag) Bool() bool { return bool(f) }

// Document is a stored document record. FileNo is assigned server-side
// on create, as are ID and UploadedOn.
type Document struct {
	ID         int64  `json:"id"`
	FileNo     string `json:"fileNo"`
	Title      string `json:"title"`
	Category   string `json:"category"`
	DocType    string `json:"type"`
	Year       string `json:"year"`
	Branch     string `json:"branch"`
	Department string `json:"department"`
	UploadedBy string `json:"uploadedBy"`
	UploadedOn string `json:"uploadedOn"`
	FileName   string `json:"fileName"`
	Approved   Flag   `json:"approved"`
	Remarks    string `json:"remarks,omitempty"`
}

// Employee is a user account.
type Employee struct {
	ID         int64  `json:"id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Mobile     string `json:"mobile"`
	Role       string `json:"role"`
	Branch     string `json:"branch"`
	Department string `json:"department"`
	Active     Flag   `json:"active"`
}

// NamedEntity covers the flat admin resources: roles, branches,
// departments, categories, document types and years all share the same
// shape on the wire.
type NamedEntity struct {
	ID     int64  `json:"id"`
	Name   string `json:"name"`
	Code   string `json:"code,omitempty"`
	Active Flag   `json:"active"`
}

// DashboardCounts are the per-resource record counts shown on the
// landing screen.
type DashboardCounts struct {
	Documents   int `json:"documentCount"`
	Employees   int `json:"employeeCount"`
	Branches    int `json:"branchCount"`
	Departments int `json:"departmentCount"`
	Categories  int `json:"categoryCount"`
	Types       int `json:"typeCount"`
	Years       int `json:"yearCount"`
}

// Entity is the constraint shared by every record the gateway and list
// controller operate on.
type Entity interface {
	EntityID() int64
	ActiveFlag() bool
}

func (d Document) EntityID() int64  { return d.ID }
func (d Document) ActiveFlag() bool { return d.Approved.Bool() }

func (e Employee) EntityID() int64  { return e.ID }
func (e Employee) ActiveFlag() bool { return e.Active.Bool() }

func (n NamedEntity) EntityID() int64  { return n.ID }
func (n NamedEntity) ActiveFlag() bool { return n.Active.Bool() }
