// Package session authenticates staff against the demo directory and keeps
// the resulting identity in a session store.
package session

import (
	"fmt"
	"strings"

	"transport-report-be/models"

	"golang.org/x/crypto/bcrypt"
)

// DemoPassword is shared by every account in the demo directory
const DemoPassword = "password123"

type account struct {
	identity     models.Identity
	passwordHash []byte
}

func (a *account) comparePassword(candidate string) bool {
	return bcrypt.CompareHashAndPassword(a.passwordHash, []byte(candidate)) == nil
}

// Directory is the fixed table of staff accounts
type Directory struct {
	accounts    map[string]*account
	enforceRole bool
}

// DemoIdentities returns the accounts that ship with the service
func DemoIdentities() []models.Identity {
	return []models.Identity{
		{ID: "1", Name: "Officer John Smith", Email: "police@transport.gov", Role: models.TrafficPolice, Location: "Downtown District"},
		{ID: "2", Name: "Sarah Johnson", Email: "manager@busstation.com", Role: models.BusStationManager, Location: "Central Bus Station"},
		{ID: "3", Name: "Michael Chen", Email: "admin@transport.gov", Role: models.TransportationOffice, Location: "Transportation Office"},
	}
}

// NewDirectory hashes DemoPassword once with the given bcrypt cost and
// assigns it to every demo identity. With enforceRole set, Lookup also
// requires the requested role to match the account's own role.
func NewDirectory(cost int, enforceRole bool) (*Directory, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(DemoPassword), cost)
	if err != nil {
		return nil, fmt.Errorf("hash demo password: %w", err)
	}

	d := &Directory{accounts: map[string]*account{}, enforceRole: enforceRole}
	for _, identity := range DemoIdentities() {
		d.accounts[identity.Email] = &account{identity: identity, passwordHash: hash}
	}
	return d, nil
}

// Lookup returns the identity for email when password matches. Unknown
// emails and wrong passwords are not distinguished. The requested role is
// not checked unless the directory enforces roles; the identity is always
// returned with its own role.
func (d *Directory) Lookup(email, password string, role models.Role) (models.Identity, bool) {
	acct, ok := d.accounts[strings.TrimSpace(email)]
	if !ok {
		return models.Identity{}, false
	}
	if !acct.comparePassword(password) {
		return models.Identity{}, false
	}
	if d.enforceRole && role != acct.identity.Role {
		return models.Identity{}, false
	}
	return acct.identity, true
}
