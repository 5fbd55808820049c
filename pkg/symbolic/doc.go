// Package symbolic encodes the state×color space of an asynchronous Boolean
// network as Binary Decision Diagrams, using github.com/dalzilio/rudd as the
// underlying BDD engine.
//
// A Graph owns the BDD universe and the per-variable transition relations; a
// Set is an immutable symbolic subset of the state×color space. All graph
// operations act on whole sets: single states are never enumerated.
//
// # Encoding
//
// For a network with n variables and k parameters, the BDD carries 2n+k
// levels: state variable i sits at level 2i, its primed ("next value") copy
// at level 2i+1, and parameter j at level 2n+j. Sets never constrain primed
// levels; they exist only inside transition relations. Parameters are free
// Boolean constants, so every set is implicitly indexed by a "color": one
// concrete choice of all parameters.
package symbolic
