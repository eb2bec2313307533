package main

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func writeFixture(t *testing.T, yaml string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "fixture.yaml")
	if err := os.WriteFile(path, []byte(yaml), 0o644); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	return path
}

func TestFixtureReturnZero(t *testing.T) {
	path := writeFixture(t, `
program:
  - kind: func
    name: main
    body:
      kind: block
      stmts:
        - kind: return
          exp: {kind: int, value: 0}
`)

	fx, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	prog, err := fx.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(prog.ExtDefs) != 1 {
		t.Fatalf("expected 1 ExtDef, got %d", len(prog.ExtDefs))
	}
}

func TestFixtureRejectsUndeclaredIdentifier(t *testing.T) {
	path := writeFixture(t, `
program:
  - kind: func
    name: main
    body:
      kind: block
      stmts:
        - kind: return
          exp: {kind: id, name: missing}
`)

	fx, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if _, err := fx.Build(); err == nil {
		t.Fatal("expected an error for an undeclared identifier")
	}
}

func TestFixtureStructMemberAndArrayIndex(t *testing.T) {
	path := writeFixture(t, `
structs:
  - name: pt
    members:
      - {name: x, type: {kind: int}}
      - {name: y, type: {kind: int}}
program:
  - kind: func
    name: main
    body:
      kind: block
      decs:
        - name: p
          type: {kind: struct, struct: pt}
        - name: a
          type: {kind: array, elem: {kind: int}, lens: [10]}
      stmts:
        - kind: expr
          exp:
            kind: assign
            left: {kind: member, base: {kind: id, name: p}, name: x}
            right: {kind: int, value: 1}
        - kind: expr
          exp:
            kind: assign
            left: {kind: index, base: {kind: id, name: a}, index: {kind: int, value: 0}}
            right: {kind: int, value: 2}
        - kind: return
          exp: {kind: int, value: 0}
`)

	fx, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	if _, err := fx.Build(); err != nil {
		t.Fatalf("Build: %v", err)
	}
}

func TestFixtureCallWithArgs(t *testing.T) {
	path := writeFixture(t, `
program:
  - kind: func
    name: f
    return: {kind: int}
    params:
      - {name: x, type: {kind: int}}
    body:
      kind: block
      stmts:
        - kind: return
          exp: {kind: id, name: x}
  - kind: func
    name: main
    body:
      kind: block
      stmts:
        - kind: return
          exp:
            kind: call
            name: f
            args:
              - {kind: int, value: 5}
`)

	fx, err := LoadFixture(path)
	if err != nil {
		t.Fatalf("LoadFixture: %v", err)
	}
	prog, err := fx.Build()
	if err != nil {
		t.Fatalf("Build: %v", err)
	}
	if len(prog.ExtDefs) != 2 {
		t.Fatalf("expected 2 ExtDefs, got %d", len(prog.ExtDefs))
	}
}

func TestTranslateFileProducesIR(t *testing.T) {
	path := writeFixture(t, `
program:
  - kind: func
    name: main
    body:
      kind: block
      stmts:
        - kind: return
          exp: {kind: int, value: 0}
`)

	var out, errOut strings.Builder
	if err := translateFile(path, &out, &errOut); err != nil {
		t.Fatalf("translateFile: %v, stderr: %s", err, errOut.String())
	}
	if !strings.Contains(out.String(), "FUNCTION main") {
		t.Errorf("expected IR output to contain FUNCTION main, got:\n%s", out.String())
	}
}
