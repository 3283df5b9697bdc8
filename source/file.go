package source

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"unicode"

	"gopkg.in/yaml.v3"

	"github.com/Skaland01/Kollektiv/types"
)

// ErrInvalidHousehold is returned when a household file fails validation.
var ErrInvalidHousehold = errors.New("invalid household")

// Household is the YAML layout of a household file.
//
// Example:
//
//	collective: flat-42
//	rooms:
//	  - name: Kitchen
//	    category: kitchen
//	  - id: bath-up
//	    name: Upstairs bathroom
//	    category: bathroom
//	    cadence: biweekly
//	members:
//	  - name: Ola
//	  - id: kari
//	    name: Kari
//	    email: kari@example.com
//
// Missing ids are derived from the name ("Upstairs bathroom" becomes
// "upstairs-bathroom") so they stay stable between runs. Rooms without
// tasks get the default checklist of their category.
type Household struct {
	Collective string         `yaml:"collective"`
	Rooms      []types.Room   `yaml:"rooms"`
	Members    []types.Member `yaml:"members"`
}

// ParseHousehold decodes and validates a YAML household document.
//
// Returns:
//   - *Household: Normalized household (ids filled, defaults applied)
//   - error: ErrInvalidHousehold wrapped with the first problem found
func ParseHousehold(data []byte) (*Household, error) {
	var h Household
	if err := yaml.Unmarshal(data, &h); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidHousehold, err)
	}

	if err := h.normalize(); err != nil {
		return nil, err
	}

	return &h, nil
}

// LoadFile reads a household file and returns it as a static source.
//
// Example:
//
//	src, household, err := source.LoadFile("household.yaml")
func LoadFile(path string) (*Static, *Household, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to read household file: %w", err)
	}

	h, err := ParseHousehold(data)
	if err != nil {
		return nil, nil, fmt.Errorf("%s: %w", path, err)
	}

	return NewStatic(h.Rooms, h.Members), h, nil
}

func (h *Household) normalize() error {
	roomIDs := make(map[types.RoomID]struct{}, len(h.Rooms))
	for i := range h.Rooms {
		r := &h.Rooms[i]
		if r.ID == "" {
			r.ID = types.RoomID(slug(r.Name))
		}
		if r.ID == "" {
			return fmt.Errorf("%w: room #%d has neither id nor name", ErrInvalidHousehold, i+1)
		}
		if _, dup := roomIDs[r.ID]; dup {
			return fmt.Errorf("%w: duplicate room id %q", ErrInvalidHousehold, r.ID)
		}
		roomIDs[r.ID] = struct{}{}

		if r.Name == "" {
			r.Name = string(r.ID)
		}
		if r.Category == "" {
			r.Category = types.CategoryCustom
		}
		if !r.Category.Valid() {
			return fmt.Errorf("%w: room %q has unknown category %q", ErrInvalidHousehold, r.ID, r.Category)
		}
		if r.Cadence == "" {
			r.Cadence = types.CadenceWeekly
		}
		if !r.Cadence.Valid() {
			return fmt.Errorf("%w: room %q has unknown cadence %q", ErrInvalidHousehold, r.ID, r.Cadence)
		}
		if len(r.Tasks) == 0 {
			r.Tasks = types.DefaultTasks(r.Category)
		}
		for j := range r.Tasks {
			if r.Tasks[j].ID == "" {
				r.Tasks[j].ID = types.TaskID(fmt.Sprintf("%s-task-%d", r.ID, j+1))
			}
		}
	}

	memberIDs := make(map[types.MemberID]struct{}, len(h.Members))
	for i := range h.Members {
		m := &h.Members[i]
		if m.ID == "" {
			m.ID = types.MemberID(slug(m.Name))
		}
		if m.ID == "" {
			return fmt.Errorf("%w: member #%d has neither id nor name", ErrInvalidHousehold, i+1)
		}
		if _, dup := memberIDs[m.ID]; dup {
			return fmt.Errorf("%w: duplicate member id %q", ErrInvalidHousehold, m.ID)
		}
		memberIDs[m.ID] = struct{}{}

		if m.Name == "" {
			m.Name = string(m.ID)
		}
		if m.Role == "" {
			m.Role = types.RoleMember
		}
	}

	return nil
}

// slug lowercases s and joins its letter/digit runs with '-'.
func slug(s string) string {
	fields := strings.FieldsFunc(strings.ToLower(s), func(r rune) bool {
		return !unicode.IsLetter(r) && !unicode.IsDigit(r)
	})

	return strings.Join(fields, "-")
}
