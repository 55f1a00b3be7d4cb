package iltext

import (
	"fmt"
	"sort"
	"strings"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// WriteText implements write_text(module, canonical) → string (spec §4.2).
// Pretty mode preserves definition order everywhere and is meant for human
// reading; canonical mode sorts externs and globals lexicographically
// (functions stay in definition order per spec) and is what P2 requires to
// be byte-identical across repeated emission of the same module — trivially
// true here since both modes are pure functions of the Module value with no
// hidden iteration-order dependence (slices, not maps, are walked).
func WriteText(m *il.Module, canonical bool) string {
	var sb strings.Builder

	fmt.Fprintf(&sb, "il %s\n", m.Version)
	if m.Target != "" {
		fmt.Fprintf(&sb, "target %q\n", m.Target)
	}

	externs := append([]*il.Extern(nil), m.Externs...)
	globals := append([]*il.Global(nil), m.Globals...)
	if canonical {
		sort.Slice(externs, func(i, j int) bool { return externs[i].Name < externs[j].Name })
		sort.Slice(globals, func(i, j int) bool { return globals[i].Name < globals[j].Name })
	}

	for _, e := range externs {
		sb.WriteByte('\n')
		writeExtern(&sb, e)
	}
	for _, g := range globals {
		sb.WriteByte('\n')
		writeGlobal(&sb, g)
	}
	for _, f := range m.Functions {
		sb.WriteByte('\n')
		writeFunction(&sb, f)
	}
	return sb.String()
}

func writeExtern(sb *strings.Builder, e *il.Extern) {
	parts := make([]string, len(e.Params))
	for i, t := range e.Params {
		parts[i] = t.String()
	}
	fmt.Fprintf(sb, "extern @%s(%s) -> %s\n", e.Name, strings.Join(parts, ", "), e.Ret)
}

func writeGlobal(sb *strings.Builder, g *il.Global) {
	if g.Init != nil {
		fmt.Fprintf(sb, "global %s @%s = %s\n", g.Type, g.Name, g.Init.String())
		return
	}
	fmt.Fprintf(sb, "global %s @%s\n", g.Type, g.Name)
}

func writeFunction(sb *strings.Builder, f *il.Function) {
	var attrs []string
	switch f.Linkage {
	case il.Export:
		attrs = append(attrs, "export")
	case il.Import:
		attrs = append(attrs, "import")
	}
	if f.Attrs.NoThrow {
		attrs = append(attrs, "nothrow")
	}
	if f.Attrs.Pure {
		attrs = append(attrs, "pure")
	}
	if f.Attrs.ReadOnly {
		attrs = append(attrs, "readonly")
	}
	mnemonic := "func"
	for _, a := range attrs {
		mnemonic += "." + a
	}

	fmt.Fprintf(sb, "%s @%s(%s) -> %s", mnemonic, f.Name, writeParamList(f.Params), f.ReturnType)
	if f.Linkage == il.Import {
		sb.WriteByte('\n')
		return
	}
	sb.WriteString(" {\n")
	for _, b := range f.Blocks {
		writeBlock(sb, b)
	}
	sb.WriteString("}\n")
}

func writeParamList(params []il.Param) string {
	parts := make([]string, len(params))
	for i, p := range params {
		parts[i] = fmt.Sprintf("%%%d: %s", p.ID, p.Type)
	}
	return strings.Join(parts, ", ")
}

func writeBlock(sb *strings.Builder, b *il.BasicBlock) {
	fmt.Fprintf(sb, "%s(%s):\n", b.Label, writeParamList(b.Params))
	var lastLoc source.Pos
	for _, in := range b.Instructions {
		if in.Loc.IsKnown() && in.Loc != lastLoc {
			fmt.Fprintf(sb, "  .loc %d %d %d\n", in.Loc.FileID, in.Loc.Line, in.Loc.Col)
			lastLoc = in.Loc
		}
		sb.WriteString("  ")
		sb.WriteString(writeInstr(in))
		sb.WriteByte('\n')
	}
}

func writeInstr(in *il.Instr) string {
	prefix := ""
	if in.HasResult {
		prefix = fmt.Sprintf("%%%d = ", in.ResultID)
	}

	switch in.Op {
	case il.OpBr:
		return prefix + "br " + labelArgsString(in.Labels[0], in.BrArgs[0])
	case il.OpCBr:
		return prefix + fmt.Sprintf("cbr %s, %s, %s", in.Operands[0],
			labelArgsString(in.Labels[0], in.BrArgs[0]), labelArgsString(in.Labels[1], in.BrArgs[1]))
	case il.OpSwitchI32:
		parts := []string{"default: " + labelArgsString(in.Labels[0], in.BrArgs[0])}
		for i, v := range in.SwitchVals {
			parts = append(parts, fmt.Sprintf("%d: %s", v, labelArgsString(in.Labels[i+1], in.BrArgs[i+1])))
		}
		return prefix + fmt.Sprintf("switch %s, %s", in.Operands[0], strings.Join(parts, ", "))
	case il.OpEhPush:
		return prefix + "eh.push " + in.Labels[0]
	case il.OpResumeLabel:
		return prefix + fmt.Sprintf("resume.label %s, %s", in.Operands[0], in.Labels[0])
	case il.OpCall, il.OpCallIndirect:
		return prefix + writeCall(in)
	default:
		return prefix + writeGeneral(in)
	}
}

func writeGeneral(in *il.Instr) string {
	ops := make([]string, len(in.Operands))
	for i, v := range in.Operands {
		ops[i] = v.String()
	}
	s := in.Op.String()
	if len(ops) > 0 {
		s += " " + strings.Join(ops, ", ")
	}
	if in.ResultTy != il.Void || in.HasResult {
		s += " : " + in.ResultTy.String()
	}
	return s
}

func writeCall(in *il.Instr) string {
	mnemonic := in.Op.String()
	if in.CallAttrs.Tail {
		mnemonic += ".tail"
	}
	var target string
	var args []il.Value
	if in.Op == il.OpCallIndirect {
		target = in.Operands[0].String()
		args = in.Operands[1:]
	} else {
		target = "@" + in.Callee
		args = in.Operands
	}
	argStrs := make([]string, len(args))
	for i, v := range args {
		argStrs[i] = v.String()
	}
	s := fmt.Sprintf("%s %s(%s)", mnemonic, target, strings.Join(argStrs, ", "))
	if in.ResultTy != il.Void || in.HasResult {
		s += " : " + in.ResultTy.String()
	}
	return s
}

func labelArgsString(label string, args []il.Value) string {
	parts := make([]string, len(args))
	for i, v := range args {
		parts[i] = v.String()
	}
	return fmt.Sprintf("%s(%s)", label, strings.Join(parts, ", "))
}
