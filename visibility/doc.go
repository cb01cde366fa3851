// Package visibility decides which fields of a form a respondent should
// currently see.
//
// Every field carries a list of conditions, each naming a controller
// field and an expected value. A field is visible when it has no
// conditions, or when every condition holds against the raw answer given
// to its controller. Visibility never depends on another field's computed
// visibility, only on answers, so each field is evaluated independently
// in a single pass.
//
// Conditions fail closed: an unanswered controller, or one that no longer
// exists in the form, hides the dependent field. The projection over a
// whole form fails open: if evaluation panics, every field is shown.
package visibility
