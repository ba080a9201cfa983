package webhook

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidIPv4(t *testing.T) {
	valid := []string{
		"0.0.0.0",
		"127.0.0.1",
		"192.168.1.250",
		"255.255.255.255",
		"10.0.0.1",
	}
	for _, ip := range valid {
		assert.True(t, ValidIPv4(ip), ip)
	}

	invalid := []string{
		"",
		"10.0.0",
		"10.0.0.0.0",
		"10.0.0.999",
		"256.1.1.1",
		"1.2.3.4444",
		"a.b.c.d",
		"10.0.0.-1",
		"10..0.1",
		"2001:db8::1",
		" 10.0.0.1",
	}
	for _, ip := range invalid {
		assert.False(t, ValidIPv4(ip), ip)
	}
}

func TestActionValidation(t *testing.T) {
	for _, a := range []string{"block", "unblock", "list", "reload", "status"} {
		assert.True(t, isValidAction(a), a)
	}
	for _, a := range []string{"", "BLOCK", "drop", "explode"} {
		assert.False(t, isValidAction(a), a)
	}

	assert.True(t, actionNeedsIP("block"))
	assert.True(t, actionNeedsIP("unblock"))
	assert.False(t, actionNeedsIP("list"))
	assert.False(t, actionNeedsIP("reload"))
	assert.False(t, actionNeedsIP("status"))
}
