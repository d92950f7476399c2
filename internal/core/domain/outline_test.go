package domain

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestOutlineItem_HierarchyID(t *testing.T) {
	item := OutlineItem{ID: "REQ001", Depth: 2}

	assert.Equal(t, "SH-REQ001", item.HierarchyID())
}
