// Package environment implements the Quill scope chain.
//
// A scope maps names to values and links to at most one parent. Def
// writes only the scope it is called on, so assigning a name that an
// outer scope already binds shadows it instead of mutating it. Get walks
// the chain and fails with an EVALUATION_ERROR whose "scopes" detail holds
// the dump of every frame.
package environment
