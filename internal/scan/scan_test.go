package scan

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSkipStringLiteral_Basic(t *testing.T) {
	s := `"hello" rest`
	end := SkipStringLiteral(s, 0)
	assert.Equal(t, 6, end)
	assert.Equal(t, byte('"'), s[end])
}

func TestSkipStringLiteral_Escapes(t *testing.T) {
	s := `"a\"b" tail`
	end := SkipStringLiteral(s, 0)
	assert.Equal(t, 5, end)
}

func TestSkipStringLiteral_TemplateInterpolation(t *testing.T) {
	s := "`prefix ${ {a: '}'} } suffix` tail"
	end := SkipStringLiteral(s, 0)
	require.Less(t, end, len(s))
	assert.Equal(t, byte('`'), s[end])
	assert.Equal(t, " tail", s[end+1:])
}

func TestSkipStringLiteral_NestedTemplate(t *testing.T) {
	s := "`a ${`inner ${x}`} b`"
	end := SkipStringLiteral(s, 0)
	assert.Equal(t, len(s)-1, end)
}

func TestSkipStringLiteral_Unterminated(t *testing.T) {
	s := `"never closed`
	assert.Equal(t, len(s)-1, SkipStringLiteral(s, 0))
}

func TestFindMatchingDelimiter_Nested(t *testing.T) {
	s := "( a ( b ) c ) d"
	assert.Equal(t, 12, FindMatchingDelimiter(s, 0, '(', ')'))
}

func TestFindMatchingDelimiter_SkipsStringsAndComments(t *testing.T) {
	s := `{ x: ")}" /* } */ } rest`
	end := FindMatchingDelimiter(s, 0, '{', '}')
	require.GreaterOrEqual(t, end, 0)
	assert.Equal(t, byte('}'), s[end])
	assert.Equal(t, " rest", s[end+1:])
}

func TestFindMatchingDelimiter_NotFound(t *testing.T) {
	assert.Equal(t, -1, FindMatchingDelimiter("( unterminated", 0, '(', ')'))
	assert.Equal(t, -1, FindMatchingDelimiter("xyz", 0, '(', ')'))
}

func TestFindMatchingDelimiter_AnglesWithArrow(t *testing.T) {
	s := "<A, (x: B) => C, D> tail"
	end := FindMatchingDelimiter(s, 0, '<', '>')
	require.GreaterOrEqual(t, end, 0)
	assert.Equal(t, " tail", s[end+1:])
}

func TestSplitTopLevel_IgnoresNestedCommas(t *testing.T) {
	parts := SplitTopLevel(`a, f(b, c), {d: 1, e: 2}, "x,y"`, ',', false)
	require.Len(t, parts, 4)
	assert.Equal(t, "a", parts[0])
	assert.Equal(t, " f(b, c)", parts[1])
	assert.Equal(t, " {d: 1, e: 2}", parts[2])
	assert.Equal(t, ` "x,y"`, parts[3])
}

func TestSplitTopLevel_AngleTracking(t *testing.T) {
	// Without angle tracking the comma inside Map<K, V> splits.
	loose := SplitTopLevel("Map<K, V>, B", ',', false)
	assert.Len(t, loose, 3)

	strict := SplitTopLevel("Map<K, V>, B", ',', true)
	require.Len(t, strict, 2)
	assert.Equal(t, "Map<K, V>", strict[0])
}

func TestIndexTopLevel(t *testing.T) {
	assert.Equal(t, -1, IndexTopLevel("{a: 1}", ':'))
	assert.Equal(t, 5, IndexTopLevel(`"x:" : 1`, ':'))
	assert.Equal(t, 11, IndexTopLevel("(a ? b : c): d", ':'))
}

func TestIndexTopLevel_FindsOpeningBracket(t *testing.T) {
	// The searched byte may itself be an opener; it must still match at
	// depth zero rather than being counted as nesting.
	assert.Equal(t, 0, IndexTopLevel("{ settingsSchema: s }", '{'))
	assert.Equal(t, 8, IndexTopLevel(`"not {" { x: 1 }`, '{'))
	assert.Equal(t, -1, IndexTopLevel("(wrapped { x })", '{'))
	assert.Equal(t, 2, IndexTopLevel("a [b[0]] c", '['))
}

func TestStringLiterals(t *testing.T) {
	lits := StringLiterals(`"a" | 'b' | /* "no" */ "c" // 'skip'`)
	assert.Equal(t, []string{"a", "b", "c"}, lits)
}

func TestHasWordAt(t *testing.T) {
	assert.True(t, HasWordAt("type A = B", 0, "type"))
	assert.False(t, HasWordAt("subtype A", 3, "type"))
	assert.False(t, HasWordAt("obj.type = 1", 4, "type"))
	assert.False(t, HasWordAt("typeof x", 0, "type"))
}

func TestIsIdentifier(t *testing.T) {
	assert.True(t, IsIdentifier("settingsSchema"))
	assert.True(t, IsIdentifier("$x_1"))
	assert.False(t, IsIdentifier("1abc"))
	assert.False(t, IsIdentifier("a.b"))
	assert.False(t, IsIdentifier(""))
}
