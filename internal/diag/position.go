package diag

import "fmt"

// Position tracks a source location for diagnostics. The lowering pass never
// constructs these itself; it only threads positions through from the T-AST
// it is given, mirroring how Loc flows through move-compiler's hlir/translate.rs.
type Position struct {
	Filename string
	Offset   int
	Line     int
	Column   int
}

func (p Position) String() string {
	return fmt.Sprintf("%s:%d:%d", p.Filename, p.Line, p.Column)
}
