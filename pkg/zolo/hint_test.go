package zolo

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestHintNames(t *testing.T) {
	require.Equal(t,
		[]string{"bool", "float", "int", "ratio", "str", "time", "timestamp", "version"},
		HintNames())
}

func TestHintDoc(t *testing.T) {
	doc, ok := HintDoc("int")
	require.True(t, ok)
	require.NotEmpty(t, doc)

	_, ok = HintDoc("complex")
	require.False(t, ok)
}

func TestResolveHint(t *testing.T) {
	type tc struct {
		raw  string
		hint string
		want Node
	}

	tests := map[string]tc{
		"no hint":           {raw: "42", hint: "", want: &String{Value: "42"}},
		"unknown hint":      {raw: "42", hint: "wat", want: &String{Value: "42"}},
		"int":               {raw: "42", hint: "int", want: &Integer{Value: 42}},
		"negative int":      {raw: "-7", hint: "int", want: &Integer{Value: -7}},
		"float":             {raw: "3.5", hint: "float", want: &Float{Value: 3.5}},
		"float exponent":    {raw: "1e3", hint: "float", want: &Float{Value: 1000}},
		"bool true":         {raw: "true", hint: "bool", want: &Boolean{Value: true}},
		"bool false":        {raw: "false", hint: "bool", want: &Boolean{Value: false}},
		"str":               {raw: "true", hint: "str", want: &String{Value: "true"}},
		"version two part":  {raw: "1.2", hint: "version", want: &String{Value: "1.2"}},
		"version three":     {raw: "1.2.3", hint: "version", want: &String{Value: "1.2.3"}},
		"timestamp rfc3339": {raw: "2024-06-01T12:00:00Z", hint: "timestamp", want: &String{Value: "2024-06-01T12:00:00Z"}},
		"timestamp datetime": {
			raw: "2024-06-01 12:00:00", hint: "timestamp",
			want: &String{Value: "2024-06-01 12:00:00"},
		},
		"timestamp date": {raw: "2024-06-01", hint: "timestamp", want: &String{Value: "2024-06-01"}},
		"time hm":        {raw: "09:30", hint: "time", want: &String{Value: "09:30"}},
		"time hms":       {raw: "09:30:15", hint: "time", want: &String{Value: "09:30:15"}},
		"ratio":          {raw: "16:9", hint: "ratio", want: &String{Value: "16:9"}},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, msg := resolveHint(tt.raw, tt.hint)
			require.Empty(t, msg)
			require.Equal(t, tt.want, got)
		})
	}
}

func TestResolveHint_Failures(t *testing.T) {
	type tc struct {
		raw  string
		hint string
	}

	tests := map[string]tc{
		"int word":           {raw: "abc", hint: "int"},
		"int trailing":       {raw: "1x", hint: "int"},
		"float word":         {raw: "fast", hint: "float"},
		"bool yes":           {raw: "yes", hint: "bool"},
		"bool capital":       {raw: "True", hint: "bool"},
		"version word":       {raw: "latest", hint: "version"},
		"version four parts": {raw: "1.2.3.4", hint: "version"},
		"timestamp word":     {raw: "yesterday", hint: "timestamp"},
		"time out of range":  {raw: "25:00", hint: "time"},
		"ratio missing part": {raw: "16:", hint: "ratio"},
	}

	for name, tt := range tests {
		t.Run(name, func(t *testing.T) {
			got, msg := resolveHint(tt.raw, tt.hint)
			require.NotEmpty(t, msg)
			te, ok := got.(*TypeError)
			require.True(t, ok)
			require.Equal(t, tt.hint, te.Hint)
			require.Equal(t, tt.raw, te.Raw)
			require.Equal(t, msg, te.Message)
		})
	}
}
