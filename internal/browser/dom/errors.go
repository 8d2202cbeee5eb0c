// internal/browser/dom/errors.go
package dom

import (
	"errors"
	"fmt"
)

// Sentinel kinds. Every error returned by the object graph wraps exactly one
// of these, so callers branch with errors.Is.
var (
	// ErrHierarchyRequest reports a structural mutation that names a node
	// which is not an actual child or reference of the acting node, or that
	// would create a cycle.
	ErrHierarchyRequest = errors.New("HierarchyRequestError")
	// ErrSyntax reports an invalid selector, XPath expression or
	// insertAdjacentHTML position.
	ErrSyntax = errors.New("SyntaxError")
	// ErrArgumentMissing reports a required argument that was nil.
	ErrArgumentMissing = errors.New("TypeError")
)

// Exception is the concrete error type. Its message follows the format page
// scripts see from a browser.
type Exception struct {
	Kind      error
	Interface string
	Op        string
	Message   string
}

func (e *Exception) Error() string {
	return fmt.Sprintf("Failed to execute '%s' on '%s': %s", e.Op, e.Interface, e.Message)
}

// Unwrap exposes the sentinel kind.
func (e *Exception) Unwrap() error { return e.Kind }

// Name returns the DOMException name, e.g. "SyntaxError".
func (e *Exception) Name() string { return e.Kind.Error() }

func hierarchyError(iface, op, msg string) error {
	return &Exception{Kind: ErrHierarchyRequest, Interface: iface, Op: op, Message: msg}
}

func syntaxError(iface, op, msg string) error {
	return &Exception{Kind: ErrSyntax, Interface: iface, Op: op, Message: msg}
}

func argumentMissing(iface, op string, position int, typ string) error {
	return &Exception{
		Kind:      ErrArgumentMissing,
		Interface: iface,
		Op:        op,
		Message:   fmt.Sprintf("parameter %d is not of type '%s'.", position, typ),
	}
}

func invalidSelector(iface, op, selector string) error {
	return syntaxError(iface, op, fmt.Sprintf("'%s' is not a valid selector.", selector))
}
