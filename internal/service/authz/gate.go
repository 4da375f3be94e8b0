// Package authz decides which actor may perform which lifecycle operation.
//
// Decisions are evaluated on every call from the actor's current permission
// set; nothing is cached between requests.
package authz

import (
	"slices"

	"newspaper-agency/internal/domain/entity"
	"newspaper-agency/internal/observability/metrics"
)

// Operation is a lifecycle operation subject to authorization.
type Operation string

const (
	List     Operation = "list"
	Get      Operation = "get"
	Create   Operation = "create"
	Update   Operation = "update"
	Delete   Operation = "delete"
	Register Operation = "register"
)

// IsWrite reports whether op mutates the store.
func (op Operation) IsWrite() bool {
	return op != List && op != Get
}

// Kind is the entity type an operation acts on.
type Kind string

const (
	Topic     Kind = "topic"
	Newspaper Kind = "newspaper"
	Redactor  Kind = "redactor"
)

// Actor is whoever issues an operation. The zero value is anonymous.
type Actor struct {
	RedactorID  int64
	Username    string
	Permissions entity.PermissionSet
}

// Anonymous returns the unauthenticated actor.
func Anonymous() Actor { return Actor{} }

// ActorFor builds the actor of an active redactor account.
func ActorFor(r *entity.Redactor) Actor {
	if r == nil || r.ID <= 0 {
		return Anonymous()
	}
	return Actor{RedactorID: r.ID, Username: r.Username, Permissions: r.Permissions}
}

// Authenticated reports whether the actor is a signed-in redactor.
func (a Actor) Authenticated() bool { return a.RedactorID > 0 }

// Can reports whether the actor holds p.
func (a Actor) Can(p entity.Permission) bool {
	return a.Authenticated() && a.Permissions.Has(p)
}

// Target describes the record an operation acts on. For a redactor, ID is
// the redactor's own ID; PublisherIDs is only meaningful for newspapers.
type Target struct {
	ID           int64
	PublisherIDs []int64
}

// Gate is the authorization decision point.
type Gate struct{}

// New returns a Gate.
func New() *Gate { return &Gate{} }

// Allowed reports whether actor may perform op on kind. A nil target asks
// the coarse question: could this actor be allowed for some record.
func (g *Gate) Allowed(actor Actor, op Operation, kind Kind, target *Target) bool {
	if !op.IsWrite() {
		return true
	}

	switch kind {
	case Topic:
		return actor.Can(entity.PermManageTopics)

	case Newspaper:
		if !actor.Authenticated() {
			return false
		}
		switch op {
		case Create:
			return true
		case Update:
			return target == nil || slices.Contains(target.PublisherIDs, actor.RedactorID)
		case Delete:
			if actor.Can(entity.PermDeleteAnyNewspaper) {
				return true
			}
			return target == nil || slices.Contains(target.PublisherIDs, actor.RedactorID)
		}
		return false

	case Redactor:
		switch op {
		case Create, Register:
			return !actor.Authenticated() || actor.Can(entity.PermDeleteAnyRedactor)
		case Update:
			if !actor.Authenticated() {
				return false
			}
			return target == nil || target.ID == actor.RedactorID
		case Delete:
			if !actor.Authenticated() {
				return false
			}
			if actor.Can(entity.PermDeleteAnyRedactor) {
				return true
			}
			return target == nil || target.ID == actor.RedactorID
		}
		return false
	}
	return false
}

// Check is Allowed expressed as an error. Anonymous actors get
// entity.ErrAuthenticationRequired, everybody else entity.ErrForbidden.
// Every decision is counted.
func (g *Gate) Check(actor Actor, op Operation, kind Kind, target *Target) error {
	allowed := g.Allowed(actor, op, kind, target)
	metrics.RecordAuthzDecision(string(kind), string(op), allowed)
	if allowed {
		return nil
	}
	if !actor.Authenticated() {
		return entity.ErrAuthenticationRequired
	}
	return entity.ErrForbidden
}
