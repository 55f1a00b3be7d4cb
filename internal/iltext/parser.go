package iltext

import (
	"fmt"
	"strings"

	"github.com/splanck/viper-sub015/internal/il"
	"github.com/splanck/viper-sub015/internal/source"
)

// Parser turns a token stream into an *il.Module. It is hand-written
// recursive descent with one token of lookahead plus an explicit
// checkpoint/restore pair for the one genuinely ambiguous production: a
// block label header and an instruction line both start with TokIdent.
type Parser struct {
	lex      *Lexer
	cur      Token
	fileName string
	fileID   uint32
	diags    source.List
}

type checkpoint struct {
	lexPos       int
	lexLine, col uint32
	cur          Token
}

// ParseText is the reader's entry point (spec §4.1): parse_text(input) →
// Result<Module, Diagnostic>. It never verifies the module (that is
// internal/verify's job) — only syntax, unknown opcodes, and unknown types
// are reported here.
func ParseText(src []byte, fileName string, mgr *source.Manager) source.Result[*il.Module] {
	p := &Parser{lex: New(src, fileName), fileName: fileName}
	if mgr != nil {
		p.fileID = mgr.AddFile(fileName)
	}
	p.advance()
	mod := p.parseModule()
	if p.diags.HasErrors() {
		return source.Fail[*il.Module](p.diags)
	}
	return source.Result[*il.Module]{Value: mod, Diags: p.diags}
}

func (p *Parser) errorf(code, format string, args ...any) {
	p.diags = append(p.diags, &source.Diagnostic{
		Code:     code,
		Phase:    "parse",
		Severity: source.SeverityError,
		Pos:      source.Pos{FileID: p.fileID, Line: p.cur.Line, Col: p.cur.Col},
		Message:  fmt.Sprintf(format, args...),
	})
}

func (p *Parser) advance() {
	p.cur = p.lex.Next()
	// Newlines come through as tokens; callers skip blank lines with
	// skipNewlines at statement boundaries.
}

func (p *Parser) mark() checkpoint {
	return checkpoint{lexPos: p.lex.pos, lexLine: p.lex.line, col: p.lex.col, cur: p.cur}
}

func (p *Parser) restore(cp checkpoint) {
	p.lex.pos = cp.lexPos
	p.lex.line = cp.lexLine
	p.lex.col = cp.col
	p.cur = cp.cur
}

func (p *Parser) skipNewlines() {
	for p.cur.Type == TokNewline {
		p.advance()
	}
}

func (p *Parser) expect(tt TokenType) (Token, bool) {
	if p.cur.Type != tt {
		p.errorf("PAR001", "expected %s, got %s %q", tt, p.cur.Type, p.cur.Lit)
		return p.cur, false
	}
	tok := p.cur
	p.advance()
	return tok, true
}

func (p *Parser) expectIdent(word string) bool {
	if p.cur.Type != TokIdent || p.cur.Lit != word {
		p.errorf("PAR001", "expected %q, got %q", word, p.cur.Lit)
		return false
	}
	p.advance()
	return true
}

func (p *Parser) parseType() il.Type {
	if p.cur.Type != TokIdent {
		p.errorf("PAR009", "expected type mnemonic, got %q", p.cur.Lit)
		return il.Void
	}
	ty, ok := il.TypeByMnemonic(p.cur.Lit)
	if !ok {
		p.errorf("PAR009", "unknown type %q", p.cur.Lit)
		p.advance()
		return il.Void
	}
	p.advance()
	return ty
}

// parseModule implements the top-level grammar of spec §4.1.
func (p *Parser) parseModule() *il.Module {
	mod := &il.Module{}

	p.skipNewlines()
	if !p.expectIdent("il") {
		return mod
	}
	mod.Version = p.scanVersionWord()
	p.skipRestOfLine()

	p.skipNewlines()
	if p.cur.Type == TokIdent && p.cur.Lit == "target" {
		p.advance()
		tok, ok := p.expect(TokString)
		if ok {
			mod.Target = tok.Lit
		}
		p.skipRestOfLine()
	}

	for {
		p.skipNewlines()
		if p.cur.Type == TokEOF {
			break
		}
		if p.cur.Type != TokIdent {
			p.errorf("PAR001", "expected top-level declaration, got %q", p.cur.Lit)
			p.skipRestOfLine()
			continue
		}
		switch {
		case p.cur.Lit == "extern":
			p.parseExtern(mod)
		case p.cur.Lit == "global":
			p.parseGlobal(mod)
		case strings.HasPrefix(p.cur.Lit, "func"):
			p.parseFunc(mod)
		default:
			p.errorf("PAR001", "unknown top-level keyword %q", p.cur.Lit)
			p.skipRestOfLine()
		}
	}
	return mod
}

// scanVersionWord reads the dotted version literal after `il`. The general
// lexer tokenizes "0.2.0" as FLOAT("0.2") DOT INT("0"); the version word is
// reassembled from the raw literals since it is not used as a numeric value.
func (p *Parser) scanVersionWord() string {
	var sb strings.Builder
	for {
		switch p.cur.Type {
		case TokInt, TokFloat, TokIdent:
			sb.WriteString(p.cur.Lit)
			p.advance()
		case TokDot:
			sb.WriteString(".")
			p.advance()
		default:
			return sb.String()
		}
	}
}

// skipRestOfLine consumes tokens through (and including) the next newline,
// used after a header/declaration line whose exact trailing tokens we do
// not otherwise validate.
func (p *Parser) skipRestOfLine() {
	for p.cur.Type != TokNewline && p.cur.Type != TokEOF {
		p.advance()
	}
	if p.cur.Type == TokNewline {
		p.advance()
	}
}

func (p *Parser) parseExtern(mod *il.Module) {
	p.advance() // "extern"
	name, ok := p.expect(TokGlobal)
	if !ok {
		p.skipRestOfLine()
		return
	}
	if _, ok := p.expect(TokLParen); !ok {
		p.skipRestOfLine()
		return
	}
	var params []il.Type
	for p.cur.Type != TokRParen && p.cur.Type != TokEOF {
		params = append(params, p.parseType())
		if p.cur.Type == TokComma {
			p.advance()
		}
	}
	p.expect(TokRParen)
	p.expect(TokArrow)
	ret := p.parseType()
	mod.Externs = append(mod.Externs, &il.Extern{Name: name.Lit, Ret: ret, Params: params})
	p.skipRestOfLine()
}

func (p *Parser) parseGlobal(mod *il.Module) {
	p.advance() // "global"
	ty := p.parseType()
	name, ok := p.expect(TokGlobal)
	if !ok {
		p.skipRestOfLine()
		return
	}
	g := &il.Global{Name: name.Lit, Type: ty}
	if p.cur.Type == TokEquals {
		p.advance()
		v := p.parseOperand()
		g.Init = &v
	}
	mod.Globals = append(mod.Globals, g)
	p.skipRestOfLine()
}

func (p *Parser) parseFunc(mod *il.Module) {
	parts := strings.Split(p.cur.Lit, ".")
	p.advance()

	f := &il.Function{Linkage: il.Internal}
	for _, attr := range parts[1:] {
		switch attr {
		case "export":
			f.Linkage = il.Export
		case "import":
			f.Linkage = il.Import
		case "nothrow":
			f.Attrs.NoThrow = true
		case "pure":
			f.Attrs.Pure = true
		case "readonly":
			f.Attrs.ReadOnly = true
		default:
			p.errorf("PAR003", "unknown function attribute %q", attr)
		}
	}

	name, ok := p.expect(TokGlobal)
	if !ok {
		p.skipRestOfLine()
		return
	}
	f.Name = name.Lit

	if _, ok := p.expect(TokLParen); !ok {
		p.skipRestOfLine()
		return
	}
	f.Params = p.parseParamList()
	p.expect(TokRParen)
	p.expect(TokArrow)
	f.ReturnType = p.parseType()

	if f.Linkage == il.Import {
		p.skipRestOfLine()
		mod.Functions = append(mod.Functions, f)
		return
	}

	p.skipNewlines()
	if _, ok := p.expect(TokLBrace); !ok {
		mod.Functions = append(mod.Functions, f)
		return
	}
	f.Blocks = p.parseBlocks()
	p.expect(TokRBrace)
	p.skipRestOfLine()
	mod.Functions = append(mod.Functions, f)
}

// parseParamList parses `%id: T, %id: T, ...` — the shared form for both
// function parameters and block parameters (spec §3.7).
func (p *Parser) parseParamList() []il.Param {
	var params []il.Param
	for p.cur.Type != TokRParen && p.cur.Type != TokEOF {
		idTok, ok := p.expect(TokTemp)
		if !ok {
			break
		}
		p.expect(TokColon)
		ty := p.parseType()
		params = append(params, il.Param{ID: parseTempID(idTok.Lit), Type: ty})
		if p.cur.Type == TokComma {
			p.advance()
		} else {
			break
		}
	}
	return params
}

func (p *Parser) parseBlocks() []*il.BasicBlock {
	var blocks []*il.BasicBlock
	p.skipNewlines()
	for p.cur.Type != TokRBrace && p.cur.Type != TokEOF {
		label, params, ok := p.tryParseBlockHeader()
		if !ok {
			p.errorf("PAR002", "expected block label")
			p.skipRestOfLine()
			continue
		}
		p.skipNewlines()
		var lastLoc source.Pos
		var instrs []*il.Instr
		for {
			p.skipNewlines()
			if p.cur.Type == TokRBrace || p.cur.Type == TokEOF {
				break
			}
			cp := p.mark()
			if _, _, ok2 := p.tryParseBlockHeader(); ok2 {
				p.restore(cp)
				break
			}
			instr, isLoc, newLoc := p.parseInstrLine(lastLoc)
			if isLoc {
				lastLoc = newLoc
				continue
			}
			if instr == nil {
				// parse error already recorded; avoid infinite loop
				if p.cur.Type != TokNewline {
					p.advance()
				}
				continue
			}
			instrs = append(instrs, instr)
			p.skipNewlines()
		}
		blocks = append(blocks, &il.BasicBlock{Label: label, Params: params, Instructions: instrs})
	}
	return blocks
}

// tryParseBlockHeader attempts `label[(params)]:`; on failure the parser
// state is restored to before the attempt so the caller can reparse the
// same tokens as an instruction.
func (p *Parser) tryParseBlockHeader() (string, []il.Param, bool) {
	cp := p.mark()
	if p.cur.Type != TokIdent {
		return "", nil, false
	}
	label := p.cur.Lit
	p.advance()

	var params []il.Param
	if p.cur.Type == TokLParen {
		p.advance()
		params = p.parseParamList()
		if p.cur.Type != TokRParen {
			p.restore(cp)
			return "", nil, false
		}
		p.advance()
	}
	if p.cur.Type != TokColon {
		p.restore(cp)
		return "", nil, false
	}
	p.advance()
	return label, params, true
}

func parseTempID(lit string) uint32 {
	var id uint32
	for i := 0; i < len(lit); i++ {
		if lit[i] < '0' || lit[i] > '9' {
			return id
		}
		id = id*10 + uint32(lit[i]-'0')
	}
	return id
}
