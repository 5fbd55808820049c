// Package model defines asynchronous Boolean network models: a set of named
// Boolean variables, one update expression per variable, and optional free
// parameters that act as unresolved Boolean constants ("colors").
//
// Models can be built programmatically from expression constructors (Var, Not,
// And, ...) or loaded from text formats: the ".bnet" line format
// ("target, expression") and a YAML variant. Parsing produces a plain syntax
// tree; the symbolic encoding of a model lives in package symbolic.
package model
