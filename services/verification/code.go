package verification

import "strings"

// CodeLength is the number of digits in a mobile verification code.
const CodeLength = 6

// CodeInput models six single-character fields with a focused index.
type CodeInput struct {
	fields [CodeLength]string
	focus  int
}

// NewCodeInput prefills the fields from code, ignoring non-digits.
func NewCodeInput(code string) *CodeInput {
	c := &CodeInput{}
	c.Input(0, code)
	c.focus = 0
	return c
}

func digitsOnly(v string) string {
	var b strings.Builder
	for _, r := range v {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}

// Input sets field i. A multi-digit value (a paste) fills field i and those after it;
// digits past the last field are dropped. Focus moves past the last written field.
func (c *CodeInput) Input(i int, v string) {
	if i < 0 || i >= CodeLength {
		return
	}
	digits := digitsOnly(v)
	if digits == "" {
		c.fields[i] = ""
		c.focus = i
		return
	}
	pos := i
	for _, r := range digits {
		if pos >= CodeLength {
			break
		}
		c.fields[pos] = string(r)
		pos++
	}
	c.focus = min(pos, CodeLength-1)
}

// Backspace clears field i and shifts the following digits left. On an empty field
// it removes the previous digit instead.
func (c *CodeInput) Backspace(i int) {
	if i < 0 || i >= CodeLength {
		return
	}
	if c.fields[i] == "" && i > 0 {
		i--
	}
	copy(c.fields[i:], c.fields[i+1:])
	c.fields[CodeLength-1] = ""
	c.focus = i
}

func (c *CodeInput) Left() {
	if c.focus > 0 {
		c.focus--
	}
}

func (c *CodeInput) Right() {
	if c.focus < CodeLength-1 {
		c.focus++
	}
}

func (c *CodeInput) Focus() int { return c.focus }

// Fields returns a copy of the six field values.
func (c *CodeInput) Fields() []string {
	out := make([]string, CodeLength)
	copy(out, c.fields[:])
	return out
}

// Value joins the fields; empty fields contribute nothing.
func (c *CodeInput) Value() string {
	return strings.Join(c.fields[:], "")
}

func (c *CodeInput) Complete() bool {
	for _, f := range c.fields {
		if f == "" {
			return false
		}
	}
	return true
}

// IsCompleteCode reports whether code is exactly six ASCII digits.
func IsCompleteCode(code string) bool {
	return len(code) == CodeLength && digitsOnly(code) == code
}

// AutoSubmitter fires once per distinct complete code.
type AutoSubmitter struct {
	last string
}

// NewAutoSubmitter restores the guard from a previously submitted code.
func NewAutoSubmitter(last string) *AutoSubmitter {
	return &AutoSubmitter{last: last}
}

// ShouldSubmit returns true the first time a given complete code is seen with a
// non-empty token, and records it.
func (a *AutoSubmitter) ShouldSubmit(code, token string) bool {
	if token == "" || !IsCompleteCode(code) || code == a.last {
		return false
	}
	a.last = code
	return true
}

func (a *AutoSubmitter) Last() string { return a.last }
