package chain

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"
)

func TestParseName_KnownValues(t *testing.T) {
	t.Parallel()

	tests := []struct {
		in   string
		want uint64
	}{
		{"helloworld", 0x6aa31a72978a4000},
		{"mycontract", 0x979149e6e6464000},
		{"eosio", 0x5530ea0000000000},
		{"eosio.token", 0x5530ea033482a600},
		{"alice", 0x345c850000000000},
	}
	for _, tt := range tests {
		tt := tt
		t.Run(tt.in, func(t *testing.T) {
			t.Parallel()

			n, err := ParseName(tt.in)
			require.NoError(t, err)
			assert.Equal(t, tt.want, uint64(n))
			assert.Equal(t, tt.in, n.String())
		})
	}
}

func TestParseName_ThirteenthCharacter(t *testing.T) {
	t.Parallel()

	n, err := ParseName("aaaaaaaaaaaaj")
	require.NoError(t, err)
	assert.Equal(t, uint64(0x0f), uint64(n)&0x0f)
	assert.Equal(t, "aaaaaaaaaaaaj", n.String())

	_, err = ParseName("aaaaaaaaaaaak")
	require.ErrorIs(t, err, ErrInvalidName)
}

func TestParseName_Invalid(t *testing.T) {
	t.Parallel()

	for _, in := range []string{"", "Hello", "a6", ".abc", "abc.", "a..b", "abcdefghijklmn", "with space"} {
		_, err := ParseName(in)
		assert.ErrorIs(t, err, ErrInvalidName, "input %q", in)
	}
}

func TestName_StringKeepsInnerDots(t *testing.T) {
	t.Parallel()

	n := MustParseName("a.b.c")
	assert.Equal(t, "a.b.c", n.String())
	assert.Equal(t, "", Name(0).String())
	assert.True(t, Name(0).IsEmpty())
}

func TestMustParseName_Panics(t *testing.T) {
	t.Parallel()

	assert.Panics(t, func() { MustParseName("NOPE") })
}

func TestName_YAML(t *testing.T) {
	t.Parallel()

	var doc struct {
		Account Name `yaml:"account"`
	}
	require.NoError(t, yaml.Unmarshal([]byte("account: mycontract\n"), &doc))
	assert.Equal(t, MustParseName("mycontract"), doc.Account)

	out, err := yaml.Marshal(doc)
	require.NoError(t, err)
	assert.Equal(t, "account: mycontract\n", string(out))

	err = yaml.Unmarshal([]byte("account: BAD\n"), &doc)
	require.ErrorIs(t, err, ErrInvalidName)
}
