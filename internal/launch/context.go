// Where: internal/launch/context.go
// What: Launch context snapshot types.
// Why: Normalize CLI inputs into an immutable view of the current production context.
package launch

import (
	"fmt"
	"strconv"
	"strings"
)

// EntityType identifies the production-tracking object anchoring a launch.
type EntityType string

const (
	EntityProject  EntityType = "Project"
	EntityShot     EntityType = "Shot"
	EntitySequence EntityType = "Sequence"
	EntityAsset    EntityType = "Asset"
)

// Entity is the tracking object the launch is anchored on. A zero Entity
// means the launch has no entity beyond the project itself.
type Entity struct {
	Type EntityType
	Code string
	ID   int
}

// IsZero reports whether no entity was provided.
func (e Entity) IsZero() bool {
	return e.Type == "" && e.Code == "" && e.ID == 0
}

// Context is the read-only snapshot taken once per launch. All resolution
// work reads from it; nothing mutates it afterwards.
type Context struct {
	ProjectID   int
	ProjectName string
	UserID      int
	UserName    string
	TaskID      int
	Entity      Entity
	AppPath     string
	AppArgs     []string
	Version     string
	Engine      string
}

// ParseEntity parses the CLI entity spec "Type:Code" or "Type:Code:ID"
// into an Entity. An empty spec yields a zero Entity.
func ParseEntity(spec string) (Entity, error) {
	spec = strings.TrimSpace(spec)
	if spec == "" {
		return Entity{}, nil
	}

	parts := strings.SplitN(spec, ":", 3)
	if len(parts) < 2 || strings.TrimSpace(parts[0]) == "" || strings.TrimSpace(parts[1]) == "" {
		return Entity{}, fmt.Errorf("invalid entity spec %q (want Type:Code or Type:Code:ID)", spec)
	}

	entityType := EntityType(strings.TrimSpace(parts[0]))
	switch entityType {
	case EntityProject, EntityShot, EntitySequence, EntityAsset:
	default:
		return Entity{}, fmt.Errorf("unknown entity type %q", parts[0])
	}

	entity := Entity{Type: entityType, Code: strings.TrimSpace(parts[1])}
	if len(parts) == 3 {
		id, err := strconv.Atoi(strings.TrimSpace(parts[2]))
		if err != nil {
			return Entity{}, fmt.Errorf("invalid entity id %q: %w", parts[2], err)
		}
		entity.ID = id
	}
	return entity, nil
}
