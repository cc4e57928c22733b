// Package todo is a typed view over an observed todo record.
package todo

//go:generate go run ../cmd/codegen --package todo --type Todo --field title:string --field done:bool --field priority:int --out todo_gen.go
