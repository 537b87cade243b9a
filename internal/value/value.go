// Package value implements the interpreter's scalar value model: a tagged
// union of Integer, String and Error. Every operator is total; failures come
// back as Error values and it is up to the caller to notice them. Integer
// results that do not fit in int64 are an overflow Error, never wrapped.
package value

import (
    "math"
    "strconv"
    "strings"
)

// Type is the tag of a Value.
type Type uint8

const (
    TypeError Type = iota
    TypeInt
    TypeString
)

// Value is a tagged scalar. The zero Value is Error(""), the "no meaningful
// result" placeholder returned by statements and unbound identifiers.
type Value struct {
    typ Type
    i   int64
    s   string // string payload or error message
}

func Int(i int64) Value  { return Value{typ: TypeInt, i: i} }
func Str(s string) Value { return Value{typ: TypeString, s: s} }
func Err(m string) Value  { return Value{typ: TypeError, s: m} }

func (v Value) Type() Type   { return v.typ }
func (v Value) IsInt() bool  { return v.typ == TypeInt }
func (v Value) IsStr() bool  { return v.typ == TypeString }
func (v Value) IsErr() bool  { return v.typ == TypeError }
func (v Value) Int64() int64 { return v.i }

// Text returns the payload of a String value.
func (v Value) Text() string {
    if v.typ != TypeString {
        return ""
    }
    return v.s
}

// Message returns the message carried by an Error value.
func (v Value) Message() string {
    if v.typ != TypeError {
        return ""
    }
    return v.s
}

// String renders an Integer as decimal digits and a String as its raw text.
func (v Value) String() string {
    switch v.typ {
    case TypeInt:
        return strconv.FormatInt(v.i, 10)
    case TypeString:
        return v.s
    default:
        return "error: " + v.s
    }
}

func (t Type) String() string {
    switch t {
    case TypeInt:
        return "Integer"
    case TypeString:
        return "String"
    default:
        return "Error"
    }
}

func Add(l, r Value) Value {
    switch {
    case l.IsInt() && r.IsInt():
        sum := l.i + r.i
        if (sum > l.i) != (r.i > 0) {
            return Err("Integer overflow on operands of +")
        }
        return Int(sum)
    case l.IsStr() && r.IsStr():
        return Str(l.s + r.s)
    }
    return Err("Type mismatch on operands of +")
}

func Sub(l, r Value) Value {
    if l.IsInt() && r.IsInt() {
        diff := l.i - r.i
        if (diff < l.i) != (r.i > 0) {
            return Err("Integer overflow on operands of -")
        }
        return Int(diff)
    }
    return Err("Type mismatch on operands of -")
}

// Mul multiplies integers or repeats a string a non-negative number of times.
func Mul(l, r Value) Value {
    switch {
    case l.IsInt() && r.IsInt():
        p := l.i * r.i
        if l.i != 0 && (p/l.i != r.i || (l.i == -1 && r.i == math.MinInt64)) {
            return Err("Integer overflow on operands of *")
        }
        return Int(p)
    case l.IsInt() && r.IsStr():
        if l.i < 0 {
            return Err("Negative number multiplied by string")
        }
        return repeat(r.s, l.i)
    case l.IsStr() && r.IsInt():
        if r.i < 0 {
            return Err("Cannot multiply string by negative int")
        }
        return repeat(l.s, r.i)
    }
    return Err("Type mismatch on operands of *")
}

// maxStringLen is the longest string repetition may build.
const maxStringLen = 1 << 30

func repeat(s string, n int64) Value {
    if len(s) > 0 && n > maxStringLen/int64(len(s)) {
        return Err("String too large on operands of *")
    }
    return Str(strings.Repeat(s, int(n)))
}

// Div truncates toward zero. A zero divisor is reported before the operand
// types are looked at.
func Div(l, r Value) Value {
    if r.IsInt() && r.i == 0 {
        return Err("Divide by zero error")
    }
    if l.IsInt() && r.IsInt() {
        if l.i == math.MinInt64 && r.i == -1 {
            return Err("Integer overflow on operands of /")
        }
        return Int(l.i / r.i)
    }
    return Err("Type mismatch on operands of /")
}

// Reverse reverses the decimal digits of an integer's magnitude, keeping its
// sign, or the characters of a string.
func Reverse(v Value) Value {
    switch v.typ {
    case TypeInt:
        return reverseInt(v.i)
    case TypeString:
        rs := []rune(v.s)
        for i, j := 0, len(rs)-1; i < j; i, j = i+1, j-1 {
            rs[i], rs[j] = rs[j], rs[i]
        }
        return Str(string(rs))
    }
    return Err("Type mismatch on operands of !")
}

func reverseInt(i int64) Value {
    digits := strconv.FormatInt(i, 10)
    neg := strings.HasPrefix(digits, "-")
    digits = strings.TrimPrefix(digits, "-")

    b := []byte(digits)
    for x, y := 0, len(b)-1; x < y; x, y = x+1, y-1 {
        b[x], b[y] = b[y], b[x]
    }
    s := string(b)
    if neg {
        s = "-" + s
    }
    n, err := strconv.ParseInt(s, 10, 64)
    if err != nil {
        return Err("Integer overflow on operands of !")
    }
    return Int(n)
}
