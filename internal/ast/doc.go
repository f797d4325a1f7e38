// Package ast defines the owned syntax tree produced by the parser.
//
// Every node carries its source span in Loc and exposes it through Span().
// A parent span contains the spans of all its children; children appear in
// source order and never overlap. Nodes are built only by the parser and are
// not mutated after parser.Parse returns.
//
// Bad* nodes (BadDecl, BadStmt, BadExpr, BadType) mark regions the parser
// could not make sense of. A tree that contains them is best-effort and must
// not be handed to later compilation phases.
package ast
