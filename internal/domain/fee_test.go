package domain

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

func TestNewStudentStats(t *testing.T) {
	stats := NewStudentStats([]StudentSummary{
		{Status: StudentStatusPaid, PendingAmount: decimal.Zero},
		{Status: StudentStatusOverdue, PendingAmount: decimal.RequireFromString("25000")},
		{Status: StudentStatusOverdue, PendingAmount: decimal.RequireFromString("12050.50")},
	})

	require.Equal(t, 3, stats.TotalStudents)
	require.Equal(t, 1, stats.PaidStudents)
	require.Equal(t, 2, stats.OverdueStudents)
	require.True(t, decimal.RequireFromString("37050.50").Equal(stats.TotalPending))

	empty := NewStudentStats(nil)
	require.Zero(t, empty.TotalStudents)
	require.True(t, empty.TotalPending.IsZero())
}

func TestFeeStructure(t *testing.T) {
	s := FeeStructure{
		{Course: "B.E Mechanical Engineering", Year: "1st Year"},
		{
			Course: "B.E Computer Science",
			Year:   "2nd Year",
			Fees: map[string]decimal.Decimal{
				"tuition": decimal.RequireFromString("150000"),
				"lab":     decimal.RequireFromString("30000"),
			},
		},
	}
	s.Sort()
	require.Equal(t, "B.E Computer Science", s[0].Course)

	c, ok := s.Find("B.E Computer Science", "2nd Year")
	require.True(t, ok)
	require.True(t, decimal.RequireFromString("180000").Equal(c.Total()))

	clone := c.Clone()
	clone.Fees["lab"] = decimal.Zero
	require.True(t, decimal.RequireFromString("30000").Equal(c.Fees["lab"]))

	_, ok = s.Find("B.E Computer Science", "5th Year")
	require.False(t, ok)
}

func TestFeeType(t *testing.T) {
	require.True(t, ValidFeeType("tuition"))
	require.True(t, ValidFeeType("late_fine"))
	require.False(t, ValidFeeType("Tuition"))
	require.False(t, ValidFeeType("_lab"))
	require.False(t, ValidFeeType(""))

	require.Equal(t, "Tuition Fee", FeeDescription("tuition"))
	require.Equal(t, "Late Fine Fee", FeeDescription("late_fine"))
}

func TestReminderTarget(t *testing.T) {
	require.True(t, ReminderTargetAll.Students())
	require.True(t, ReminderTargetAll.Parents())
	require.False(t, ReminderTargetStudent.Parents())
	require.False(t, ReminderTargetParent.Students())
	require.False(t, ReminderTarget("teachers").Valid())
}
