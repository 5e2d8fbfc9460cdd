package queue

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/suite"
)

type QueueSuite struct {
	suite.Suite
	queue *Queue
}

func TestQueueSuite(t *testing.T) {
	suite.Run(t, new(QueueSuite))
}

func (s *QueueSuite) SetupTest() {
	s.queue = New()
}

// Add tests

func (s *QueueSuite) TestAddAppendsNewEntry() {
	s.True(s.queue.Add("Sol Ring", 1))

	s.Equal([]Entry{{Name: "Sol Ring", Quantity: 1}}, s.queue.Entries())
}

func (s *QueueSuite) TestAddMergesSameNameCaseInsensitively() {
	s.queue.Add("Forest", 2)
	s.queue.Add("forest", 3)

	s.Require().Equal(1, s.queue.Len())
	s.Equal("Forest", s.queue.Entries()[0].Name)
	s.Equal(5, s.queue.Entries()[0].Quantity)
}

func (s *QueueSuite) TestAddKeepsInsertionOrder() {
	s.queue.Add("Island", 1)
	s.queue.Add("Swamp", 1)
	s.queue.Add("ISLAND", 2)

	want := []Entry{{Name: "Island", Quantity: 3}, {Name: "Swamp", Quantity: 1}}
	if diff := cmp.Diff(want, s.queue.Entries()); diff != "" {
		s.Failf("entries mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *QueueSuite) TestAddEmptyNameIsNoop() {
	s.queue.Add("Forest", 1)

	s.False(s.queue.Add("", 4))
	s.Equal([]Entry{{Name: "Forest", Quantity: 1}}, s.queue.Entries())
}

func (s *QueueSuite) TestAddZeroQuantityIsNoop() {
	s.False(s.queue.Add("Forest", 0))
	s.False(s.queue.Add("Forest", -2))
	s.Equal(0, s.queue.Len())
}

func (s *QueueSuite) TestAddInputResetsForm() {
	in := Input{Name: "Lightning Bolt", Quantity: 4}

	s.True(s.queue.AddInput(&in))

	s.Equal(NewInput(), in)
	s.Equal(4, s.queue.Total())
}

func (s *QueueSuite) TestAddInputRejectedLeavesForm() {
	in := Input{Name: "Lightning Bolt", Quantity: 0}

	s.False(s.queue.AddInput(&in))

	s.Equal("Lightning Bolt", in.Name)
	s.Equal(0, s.queue.Len())
}

// Remove tests

func (s *QueueSuite) TestRemoveDeletesEntryAtIndex() {
	s.queue.Add("Island", 1)
	s.queue.Add("Swamp", 1)
	s.queue.Add("Plains", 1)

	s.queue.Remove(1)

	s.Equal([]Entry{{Name: "Island", Quantity: 1}, {Name: "Plains", Quantity: 1}}, s.queue.Entries())
}

func (s *QueueSuite) TestRemoveOutOfRangeIsNoop() {
	s.queue.Add("Island", 1)

	s.queue.Remove(5)
	s.queue.Remove(-1)

	s.Equal(1, s.queue.Len())
}

// Clear / Total / Flatten tests

func (s *QueueSuite) TestClearEmptiesQueue() {
	s.queue.Add("Island", 1)
	s.queue.Add("Swamp", 2)

	s.queue.Clear()

	s.Equal(0, s.queue.Len())
	s.Equal(0, s.queue.Total())
	s.Empty(s.queue.Flatten())
}

func (s *QueueSuite) TestTotalSumsQuantities() {
	s.queue.Add("Forest", 4)
	s.queue.Add("Sol Ring", 1)
	s.queue.Add("forest", 2)

	s.Equal(7, s.queue.Total())
}

func (s *QueueSuite) TestFlattenRepeatsNamesInOrder() {
	s.queue.Add("Forest", 3)
	s.queue.Add("Sol Ring", 1)

	want := []string{"Forest", "Forest", "Forest", "Sol Ring"}
	if diff := cmp.Diff(want, s.queue.Flatten()); diff != "" {
		s.Failf("flatten mismatch", "(-want +got):\n%s", diff)
	}
}

func (s *QueueSuite) TestFlattenLengthMatchesTotal() {
	adds := []Entry{
		{"Forest", 4}, {"Island", 2}, {"FOREST", 1}, {"", 3}, {"Swamp", 0}, {"Mountain", 7},
	}
	for _, a := range adds {
		s.queue.Add(a.Name, a.Quantity)
		s.Len(s.queue.Flatten(), s.queue.Total())
	}
}

func (s *QueueSuite) TestEntriesReturnsCopy() {
	s.queue.Add("Forest", 1)

	entries := s.queue.Entries()
	entries[0].Quantity = 99

	s.Equal(1, s.queue.Total())
}
