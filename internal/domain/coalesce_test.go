package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCoalesceStr(t *testing.T) {
	assert.Equal(t, "Meeting", CoalesceStr("", "  ", " Meeting ", "Other"))
	assert.Equal(t, "Other", CoalesceStr("\t", CategoryOther))
	assert.Equal(t, "", CoalesceStr())
	assert.Equal(t, "", CoalesceStr(" ", ""))
}
