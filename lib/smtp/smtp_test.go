package smtp

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBuildMessage(t *testing.T) {
	buf, err := buildMessage("no-reply@campus.local", "student@campus.local", "Job activated", "Job «Intern» is open")
	require.NoError(t, err)
	raw := buf.String()
	require.True(t, strings.Contains(raw, "To: student@campus.local"))
	require.True(t, strings.Contains(raw, "Subject: Campus Jobs - Job activated"))
	require.True(t, strings.Contains(raw, "text/plain"))
}

func TestSendSkippedWhenNotConfigured(t *testing.T) {
	require.NoError(t, Connect("", "", "", "", "no-reply@campus.local", true))
	require.False(t, Instance.IsConfigured())
	require.NoError(t, Instance.SendEMail("student@campus.local", "subject", "body"))
}
