package job

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

type countingPruner struct {
	calls int
}

func (p *countingPruner) Prune() int {
	p.calls++
	return 3
}

func TestBlacklistPruneJob_Run(t *testing.T) {
	pruner := &countingPruner{}
	NewBlacklistPruneJob(pruner).Run()
	assert.Equal(t, 1, pruner.calls)
}
