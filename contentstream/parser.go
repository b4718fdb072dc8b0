package contentstream

import (
	"bytes"
	"fmt"
	"strconv"
)

// Parser reads operations from one content stream.
type Parser struct {
	data     []byte
	pos      int
	operands []Object
	ops      []Operation
}

// NewParser creates a parser over data.
func NewParser(data []byte) *Parser {
	return &Parser{data: data}
}

// Parse returns every operation in stream order. Operands left over at the
// end of the stream are discarded.
func (p *Parser) Parse() ([]Operation, error) {
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return p.ops, nil
		}
		if err := p.next(); err != nil {
			return nil, fmt.Errorf("content stream offset %d: %w", p.pos, err)
		}
	}
}

// next consumes one token: an operand is pushed, an operator is emitted.
func (p *Parser) next() error {
	c := p.data[p.pos]

	switch {
	case c == '\'' || c == '"':
		p.pos++
		p.emit(string(c))
		return nil
	case isRegular(c) && !isNumberStart(c):
		return p.keyword()
	}

	obj, err := p.operand()
	if err != nil {
		return err
	}
	p.operands = append(p.operands, obj)
	return nil
}

// keyword reads a bare token, which is an operator unless it spells one of
// the literal keywords.
func (p *Parser) keyword() error {
	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	token := string(p.data[start:p.pos])

	switch token {
	case "true":
		p.operands = append(p.operands, Bool(true))
	case "false":
		p.operands = append(p.operands, Bool(false))
	case "null":
		p.operands = append(p.operands, Null{})
	case "ID":
		p.operands = nil
		p.skipInlineImage()
	default:
		p.emit(token)
	}
	return nil
}

func (p *Parser) emit(operator string) {
	p.ops = append(p.ops, Operation{Operator: operator, Operands: p.operands})
	p.operands = nil
}

// skipInlineImage moves past the binary data of an inline image up to and
// including its EI keyword.
func (p *Parser) skipInlineImage() {
	if p.pos < len(p.data) && isSpace(p.data[p.pos]) {
		p.pos++
	}
	for i := p.pos; i+1 < len(p.data); i++ {
		if p.data[i] != 'E' || p.data[i+1] != 'I' {
			continue
		}
		before := i == p.pos || isSpace(p.data[i-1])
		after := i+2 >= len(p.data) || isSpace(p.data[i+2]) || isDelimiter(p.data[i+2])
		if before && after {
			p.pos = i + 2
			return
		}
	}
	p.pos = len(p.data)
}

func (p *Parser) operand() (Object, error) {
	c := p.data[p.pos]

	switch {
	case isNumberStart(c):
		return p.number()
	case c == '(':
		return p.literalString()
	case c == '<' && p.peek(1) == '<':
		return p.dict()
	case c == '<':
		return p.hexString()
	case c == '/':
		return p.name(), nil
	case c == '[':
		return p.array()
	}
	return nil, fmt.Errorf("unexpected %q", c)
}

func (p *Parser) peek(offset int) byte {
	if p.pos+offset < len(p.data) {
		return p.data[p.pos+offset]
	}
	return 0
}

func (p *Parser) number() (Object, error) {
	start := p.pos
	if c := p.data[p.pos]; c == '+' || c == '-' {
		p.pos++
	}
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		if (c < '0' || c > '9') && c != '.' {
			break
		}
		p.pos++
	}

	text := string(p.data[start:p.pos])
	v, err := strconv.ParseFloat(text, 64)
	if err != nil {
		// A lone sign or dot reads as zero.
		if text == "-" || text == "+" || text == "." {
			return Number(0), nil
		}
		return nil, fmt.Errorf("bad number %q", text)
	}
	return Number(v), nil
}

func (p *Parser) literalString() (Object, error) {
	p.pos++ // (
	var buf bytes.Buffer
	depth := 1

	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++

		switch c {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return String(buf.String()), nil
			}
		case '\\':
			p.escape(&buf)
			continue
		}
		buf.WriteByte(c)
	}
	return nil, fmt.Errorf("unterminated string")
}

// escape decodes the sequence following a backslash in a literal string.
func (p *Parser) escape(buf *bytes.Buffer) {
	if p.pos >= len(p.data) {
		return
	}
	c := p.data[p.pos]
	p.pos++

	switch c {
	case 'n':
		buf.WriteByte('\n')
	case 'r':
		buf.WriteByte('\r')
	case 't':
		buf.WriteByte('\t')
	case 'b':
		buf.WriteByte('\b')
	case 'f':
		buf.WriteByte('\f')
	case '\r':
		if p.pos < len(p.data) && p.data[p.pos] == '\n' {
			p.pos++
		}
	case '\n':
	default:
		if c >= '0' && c <= '7' {
			v := int(c - '0')
			for i := 0; i < 2 && p.pos < len(p.data); i++ {
				d := p.data[p.pos]
				if d < '0' || d > '7' {
					break
				}
				v = v*8 + int(d-'0')
				p.pos++
			}
			buf.WriteByte(byte(v))
			return
		}
		buf.WriteByte(c)
	}
}

func (p *Parser) hexString() (Object, error) {
	p.pos++ // <
	var digits []byte
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		p.pos++
		switch {
		case c == '>':
			if len(digits)%2 == 1 {
				digits = append(digits, '0')
			}
			out := make([]byte, len(digits)/2)
			for i := range out {
				out[i] = hexValue(digits[2*i])<<4 | hexValue(digits[2*i+1])
			}
			return String(out), nil
		case isSpace(c):
		case isHexDigit(c):
			digits = append(digits, c)
		default:
			return nil, fmt.Errorf("bad hex digit %q", c)
		}
	}
	return nil, fmt.Errorf("unterminated hex string")
}

func (p *Parser) name() Object {
	p.pos++ // /
	var buf bytes.Buffer
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		c := p.data[p.pos]
		if c == '#' && p.pos+2 < len(p.data) && isHexDigit(p.data[p.pos+1]) && isHexDigit(p.data[p.pos+2]) {
			buf.WriteByte(hexValue(p.data[p.pos+1])<<4 | hexValue(p.data[p.pos+2]))
			p.pos += 3
			continue
		}
		buf.WriteByte(c)
		p.pos++
	}
	return Name(buf.String())
}

func (p *Parser) array() (Object, error) {
	p.pos++ // [
	arr := Array{}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated array")
		}
		if p.data[p.pos] == ']' {
			p.pos++
			return arr, nil
		}
		obj, err := p.element()
		if err != nil {
			return nil, err
		}
		arr = append(arr, obj)
	}
}

func (p *Parser) dict() (Object, error) {
	p.pos += 2 // <<
	d := Dict{}
	for {
		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		if p.data[p.pos] == '>' && p.peek(1) == '>' {
			p.pos += 2
			return d, nil
		}
		if p.data[p.pos] != '/' {
			return nil, fmt.Errorf("dictionary key is not a name")
		}
		key := p.name().(Name)

		p.skipSpaceAndComments()
		if p.pos >= len(p.data) {
			return nil, fmt.Errorf("unterminated dictionary")
		}
		val, err := p.element()
		if err != nil {
			return nil, err
		}
		d[string(key)] = val
	}
}

// element reads an operand nested in an array or dictionary, where the
// literal keywords are the only bare tokens allowed.
func (p *Parser) element() (Object, error) {
	c := p.data[p.pos]
	if !isRegular(c) || isNumberStart(c) {
		return p.operand()
	}

	start := p.pos
	for p.pos < len(p.data) && isRegular(p.data[p.pos]) {
		p.pos++
	}
	switch token := string(p.data[start:p.pos]); token {
	case "true":
		return Bool(true), nil
	case "false":
		return Bool(false), nil
	case "null":
		return Null{}, nil
	default:
		return nil, fmt.Errorf("unexpected keyword %q", token)
	}
}

func (p *Parser) skipSpaceAndComments() {
	for p.pos < len(p.data) {
		c := p.data[p.pos]
		switch {
		case isSpace(c):
			p.pos++
		case c == '%':
			for p.pos < len(p.data) && p.data[p.pos] != '\n' && p.data[p.pos] != '\r' {
				p.pos++
			}
		default:
			return
		}
	}
}

func isSpace(c byte) bool {
	return c == ' ' || c == '\t' || c == '\r' || c == '\n' || c == '\f' || c == 0
}

func isDelimiter(c byte) bool {
	switch c {
	case '(', ')', '<', '>', '[', ']', '{', '}', '/', '%':
		return true
	}
	return false
}

// isRegular reports whether c can appear inside a bare token.
func isRegular(c byte) bool {
	return !isSpace(c) && !isDelimiter(c)
}

func isNumberStart(c byte) bool {
	return (c >= '0' && c <= '9') || c == '-' || c == '+' || c == '.'
}

func isHexDigit(c byte) bool {
	return (c >= '0' && c <= '9') || (c >= 'a' && c <= 'f') || (c >= 'A' && c <= 'F')
}

func hexValue(c byte) byte {
	switch {
	case c >= '0' && c <= '9':
		return c - '0'
	case c >= 'a' && c <= 'f':
		return c - 'a' + 10
	case c >= 'A' && c <= 'F':
		return c - 'A' + 10
	}
	return 0
}
