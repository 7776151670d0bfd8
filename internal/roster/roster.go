// Package roster loads the static employee directory used for identity
// resolution, target selection and login. The directory is a CSV file with a
// header row: employeeId,name,department,team,position,password.
package roster

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"strings"
	"sync"

	"github.com/fsnotify/fsnotify"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"
)

// ErrInvalidCredentials is returned when no roster row matches the
// employee id and password pair.
var ErrInvalidCredentials = errors.New("employee id or password does not match")

// Employee is one roster row. The password column is kept private to the
// package; it never leaves through the public accessors.
type Employee struct {
	EmployeeID string `json:"employeeId"`
	Name       string `json:"name"`
	Department string `json:"department"`
	Team       string `json:"team"`
	Position   string `json:"position"`

	password string
}

// Provider serves a point-in-time snapshot of the roster. Reload swaps the
// snapshot wholesale; readers never see a partially loaded directory.
type Provider struct {
	path    string
	logger  *logrus.Logger
	mu      sync.RWMutex
	byID    map[string]*Employee
	ordered []*Employee
	watcher *fsnotify.Watcher
}

// NewProvider creates a provider and loads the roster file once.
func NewProvider(path string, logger *logrus.Logger) (*Provider, error) {
	if logger == nil {
		logger = logrus.New()
	}
	p := &Provider{path: path, logger: logger}
	if err := p.Reload(); err != nil {
		return nil, err
	}
	return p, nil
}

// Reload re-reads the roster file and replaces the in-memory snapshot.
func (p *Provider) Reload() error {
	f, err := os.Open(p.path)
	if err != nil {
		return fmt.Errorf("failed to open roster file: %w", err)
	}
	defer f.Close()

	employees, err := parse(f)
	if err != nil {
		return fmt.Errorf("failed to parse roster file: %w", err)
	}

	byID := make(map[string]*Employee, len(employees))
	for _, emp := range employees {
		byID[emp.EmployeeID] = emp
	}

	p.mu.Lock()
	p.byID = byID
	p.ordered = employees
	p.mu.Unlock()

	p.logger.WithField("count", len(employees)).Info("roster loaded")
	return nil
}

func parse(r io.Reader) ([]*Employee, error) {
	reader := csv.NewReader(r)
	reader.TrimLeadingSpace = true

	header, err := reader.Read()
	if err != nil {
		return nil, err
	}
	col := make(map[string]int, len(header))
	for i, name := range header {
		col[strings.TrimSpace(strings.TrimPrefix(name, "\uFEFF"))] = i
	}
	for _, required := range []string{"employeeId", "name", "password"} {
		if _, ok := col[required]; !ok {
			return nil, fmt.Errorf("roster header missing column %q", required)
		}
	}

	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return strings.TrimSpace(record[idx])
	}

	var employees []*Employee
	for {
		record, err := reader.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, err
		}
		emp := &Employee{
			EmployeeID: field(record, "employeeId"),
			Name:       field(record, "name"),
			Department: field(record, "department"),
			Team:       field(record, "team"),
			Position:   field(record, "position"),
			password:   field(record, "password"),
		}
		if emp.EmployeeID == "" {
			continue
		}
		employees = append(employees, emp)
	}
	return employees, nil
}

// All returns every employee in file order.
func (p *Provider) All() []*Employee {
	p.mu.RLock()
	defer p.mu.RUnlock()
	out := make([]*Employee, len(p.ordered))
	copy(out, p.ordered)
	return out
}

// FindByID returns the employee with the given id, or nil.
func (p *Provider) FindByID(employeeID string) *Employee {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.byID[employeeID]
}

// Search returns employees whose name or id contains the keyword,
// case-insensitively. An empty keyword returns everyone, matching the
// employee-picker dialog's behaviour.
func (p *Provider) Search(keyword string) []*Employee {
	keyword = strings.ToLower(strings.TrimSpace(keyword))
	p.mu.RLock()
	defer p.mu.RUnlock()

	var out []*Employee
	for _, emp := range p.ordered {
		if keyword == "" ||
			strings.Contains(strings.ToLower(emp.Name), keyword) ||
			strings.Contains(strings.ToLower(emp.EmployeeID), keyword) {
			out = append(out, emp)
		}
	}
	return out
}

// Authenticate matches an employee id and password against the roster.
// The password column may hold either a bcrypt hash or a plaintext value.
func (p *Provider) Authenticate(employeeID, password string) (*Employee, error) {
	emp := p.FindByID(employeeID)
	if emp == nil {
		return nil, ErrInvalidCredentials
	}

	if strings.HasPrefix(emp.password, "$2a$") || strings.HasPrefix(emp.password, "$2b$") {
		if bcrypt.CompareHashAndPassword([]byte(emp.password), []byte(password)) != nil {
			return nil, ErrInvalidCredentials
		}
		return emp, nil
	}

	if emp.password == "" || emp.password != password {
		return nil, ErrInvalidCredentials
	}
	return emp, nil
}

// Watch reloads the roster whenever the file changes. Call Close to stop.
func (p *Provider) Watch() error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	if err := watcher.Add(p.path); err != nil {
		watcher.Close()
		return err
	}
	p.watcher = watcher

	go func() {
		for {
			select {
			case event, ok := <-watcher.Events:
				if !ok {
					return
				}
				if event.Op&(fsnotify.Write|fsnotify.Create) != 0 {
					if err := p.Reload(); err != nil {
						p.logger.WithError(err).Warn("roster reload failed, keeping previous snapshot")
					}
				}
			case err, ok := <-watcher.Errors:
				if !ok {
					return
				}
				p.logger.WithError(err).Warn("roster watcher error")
			}
		}
	}()

	return nil
}

// Close stops the file watcher if one is running.
func (p *Provider) Close() error {
	if p.watcher != nil {
		return p.watcher.Close()
	}
	return nil
}
