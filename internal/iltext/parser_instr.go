package iltext

import (
	"strings"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// parseInstrLine parses one logical instruction line, which is either a
// `.loc` metadata directive (isLoc=true, instr=nil) or a real instruction.
// lastLoc is the block's currently-inherited location (spec §6.2: an
// instruction without its own `.loc` inherits the previous one).
func (p *Parser) parseInstrLine(lastLoc source.Pos) (instr *il.Instr, isLoc bool, newLoc source.Pos) {
	if p.cur.Type == TokDot {
		p.advance()
		if !p.expectIdent("loc") {
			p.skipRestOfLine()
			return nil, true, lastLoc
		}
		fileTok, _ := p.expect(TokInt)
		lineTok, _ := p.expect(TokInt)
		colTok, _ := p.expect(TokInt)
		loc := source.Pos{
			FileID: uint32(fileTok.IntVal),
			Line:   uint32(lineTok.IntVal),
			Col:    uint32(colTok.IntVal),
		}
		p.skipRestOfLine()
		return nil, true, loc
	}

	hasResult := false
	var resultID uint32
	if p.cur.Type == TokTemp {
		cp := p.mark()
		idLit := p.cur.Lit
		p.advance()
		if p.cur.Type == TokEquals {
			p.advance()
			hasResult = true
			resultID = parseTempID(idLit)
		} else {
			p.restore(cp)
		}
	}

	if p.cur.Type != TokIdent {
		p.errorf("PAR001", "expected instruction opcode, got %q", p.cur.Lit)
		p.skipRestOfLine()
		return nil, false, lastLoc
	}
	mnemonic := p.cur.Lit
	p.advance()

	var in *il.Instr
	switch {
	case mnemonic == "br":
		in = p.parseBr()
	case mnemonic == "cbr":
		in = p.parseCBr()
	case mnemonic == "switch":
		in = p.parseSwitch()
	case mnemonic == "eh.push":
		in = p.parseEhPush()
	case mnemonic == "resume.label":
		in = p.parseResumeLabel()
	case strings.HasPrefix(mnemonic, "call"):
		in = p.parseCall(mnemonic, hasResult, resultID)
		in.Loc = lastLoc
		return in, false, lastLoc
	default:
		in = p.parseGeneralInstr(mnemonic)
	}

	if in == nil {
		p.skipRestOfLine()
		return nil, false, lastLoc
	}
	in.HasResult = hasResult
	in.ResultID = resultID
	in.Loc = lastLoc
	p.skipRestOfLine()
	return in, false, lastLoc
}

// parseOperand parses one operand term: %id, @name, int/float/string
// literal, `null`, `true`, or `false` (spec §4.1 operand forms).
func (p *Parser) parseOperand() il.Value {
	switch p.cur.Type {
	case TokTemp:
		id := parseTempID(p.cur.Lit)
		p.advance()
		return il.TempVal(id)
	case TokGlobal:
		name := p.cur.Lit
		p.advance()
		return il.GlobalAddrVal(name)
	case TokInt:
		v := p.cur.IntVal
		p.advance()
		return il.ConstIntVal(v, false)
	case TokFloat:
		v := p.cur.FloatVal
		p.advance()
		return il.ConstFloatVal(v)
	case TokString:
		v := p.cur.Lit
		p.advance()
		return il.ConstStrVal(v)
	case TokIdent:
		switch p.cur.Lit {
		case "null":
			p.advance()
			return il.NullPtrVal()
		case "true":
			p.advance()
			return il.ConstBoolVal(true)
		case "false":
			p.advance()
			return il.ConstBoolVal(false)
		}
	}
	p.errorf("PAR001", "expected operand, got %q", p.cur.Lit)
	p.advance()
	return il.NullPtrVal()
}

func (p *Parser) parseOperandList(stop TokenType) []il.Value {
	var vals []il.Value
	for p.cur.Type != stop && p.cur.Type != TokNewline && p.cur.Type != TokEOF && p.cur.Type != TokColon {
		vals = append(vals, p.parseOperand())
		if p.cur.Type == TokComma {
			p.advance()
			continue
		}
		break
	}
	return vals
}

func (p *Parser) maybeResultType() il.Type {
	if p.cur.Type == TokColon {
		p.advance()
		return p.parseType()
	}
	return il.Void
}

// parseGeneralInstr handles every opcode whose textual form is the uniform
// `[%id =] mnemonic operand[, operand]* [: type]` shape — every opcode
// except Br/CBr/SwitchI32/EhPush/ResumeLabel/Call/CallIndirect.
func (p *Parser) parseGeneralInstr(mnemonic string) *il.Instr {
	op, ok := il.ByMnemonic(mnemonic)
	if !ok {
		p.errorf("PAR001", "unknown opcode %q", mnemonic)
		return nil
	}
	operands := p.parseOperandList(TokRBrace)
	resultTy := p.maybeResultType()
	return &il.Instr{Op: op, Operands: operands, ResultTy: resultTy}
}

// parseLabelArgs parses `label[(arg, arg, ...)]`.
func (p *Parser) parseLabelArgs() (string, []il.Value) {
	tok, ok := p.expect(TokIdent)
	if !ok {
		return "", nil
	}
	var args []il.Value
	if p.cur.Type == TokLParen {
		p.advance()
		for p.cur.Type != TokRParen && p.cur.Type != TokEOF {
			args = append(args, p.parseOperand())
			if p.cur.Type == TokComma {
				p.advance()
			}
		}
		p.expect(TokRParen)
	}
	return tok.Lit, args
}

func (p *Parser) parseBr() *il.Instr {
	label, args := p.parseLabelArgs()
	return &il.Instr{Op: il.OpBr, Labels: []string{label}, BrArgs: [][]il.Value{args}}
}

func (p *Parser) parseCBr() *il.Instr {
	cond := p.parseOperand()
	p.expect(TokComma)
	tLabel, tArgs := p.parseLabelArgs()
	p.expect(TokComma)
	fLabel, fArgs := p.parseLabelArgs()
	return &il.Instr{
		Op:       il.OpCBr,
		Operands: []il.Value{cond},
		Labels:   []string{tLabel, fLabel},
		BrArgs:   [][]il.Value{tArgs, fArgs},
	}
}

func (p *Parser) parseSwitch() *il.Instr {
	val := p.parseOperand()
	p.expect(TokComma)
	p.expectIdent("default")
	p.expect(TokColon)
	defLabel, defArgs := p.parseLabelArgs()

	in := &il.Instr{
		Op:       il.OpSwitchI32,
		Operands: []il.Value{val},
		Labels:   []string{defLabel},
		BrArgs:   [][]il.Value{defArgs},
	}
	for p.cur.Type == TokComma {
		p.advance()
		caseTok, ok := p.expect(TokInt)
		if !ok {
			break
		}
		p.expect(TokColon)
		label, args := p.parseLabelArgs()
		in.SwitchVals = append(in.SwitchVals, int32(caseTok.IntVal))
		in.Labels = append(in.Labels, label)
		in.BrArgs = append(in.BrArgs, args)
	}
	return in
}

func (p *Parser) parseEhPush() *il.Instr {
	tok, ok := p.expect(TokIdent)
	if !ok {
		return nil
	}
	return &il.Instr{Op: il.OpEhPush, Labels: []string{tok.Lit}}
}

func (p *Parser) parseResumeLabel() *il.Instr {
	tok := p.parseOperand()
	p.expect(TokComma)
	label, ok := p.expect(TokIdent)
	if !ok {
		return nil
	}
	return &il.Instr{Op: il.OpResumeLabel, Operands: []il.Value{tok}, Labels: []string{label.Lit}}
}

// parseCall handles `call`/`call.tail` and `call.indirect`/`call.indirect.tail`.
func (p *Parser) parseCall(mnemonic string, hasResult bool, resultID uint32) *il.Instr {
	indirect := strings.HasPrefix(mnemonic, "call.indirect")
	tail := strings.HasSuffix(mnemonic, ".tail")

	in := &il.Instr{HasResult: hasResult, ResultID: resultID, CallAttrs: il.CallAttrs{Tail: tail}}
	if indirect {
		in.Op = il.OpCallIndirect
		fn := p.parseOperand()
		in.Operands = append(in.Operands, fn)
	} else {
		in.Op = il.OpCall
		name, ok := p.expect(TokGlobal)
		if !ok {
			return in
		}
		in.Callee = name.Lit
	}
	p.expect(TokLParen)
	for p.cur.Type != TokRParen && p.cur.Type != TokEOF {
		in.Operands = append(in.Operands, p.parseOperand())
		if p.cur.Type == TokComma {
			p.advance()
		}
	}
	p.expect(TokRParen)
	in.ResultTy = p.maybeResultType()
	return in
}
