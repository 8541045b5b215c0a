package model_test

import (
	"github.com/cozy/blockedit/test/builder"
)

var (
	doc  = builder.Doc
	p    = builder.P
	h1   = builder.H1
	h2   = builder.H2
	h3   = builder.H3
	todo = builder.Todo
)

type (
	id     = builder.ID
	indent = builder.Indent
)

var checked = builder.Checked
