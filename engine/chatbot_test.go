package engine

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/eliza/internal/testutil"
	"github.com/hupe1980/eliza/logging"
	"github.com/hupe1980/eliza/script"
)

func newDoctor(t *testing.T) *Chatbot {
	t.Helper()
	bot, err := New("Eliza", script.Doctor())
	require.NoError(t, err)
	return bot
}

func TestChatbot_DoctorTranscript(t *testing.T) {
	bot := newDoctor(t)

	transcript := []struct {
		in   string
		want string
	}{
		{"", "How do you do. Please tell me your problem"},
		{"hello Eliza, nice to meet you. how are you?", "How do you do. Please state your problem"},
		{"no", "Are you saying 'no' just to be negative"},
		{"no", "You are being a bit negative"},
		{"no no no", "Why not"},
		{"just no", "Why 'no'"},
		{"no", "Are you saying 'no' just to be negative"},
		{"nej", "I am not sure I understand you fully"},
		{"perhaps we can look into natural language understanding problem, why not", "You don't seem quite certain"},
		{"yes but maybe everyone has problems even a computer", "Do computer worry you"},
		{"what if they start to think", "Do you think its likely that they start to think"},
		{"are you thinking yourself", "Why are you interested in whether I am thinking myself or not"},
		{"because my children have fun talking with chatbots", "Tell me more about your family"},
		{"you remind me of a family member", "In what way"},
		{"hmm", "Lets discuss further why your children have fun talking with chatbots"},
	}

	for i, turn := range transcript {
		got, err := bot.Respond(turn.in)
		require.NoError(t, err, "turn %d", i)
		assert.Equal(t, turn.want, got, "turn %d: %q", i, turn.in)
	}
}

func TestChatbot_Name(t *testing.T) {
	assert.Equal(t, "Eliza", newDoctor(t).Name())
}

func TestChatbot_StartIsVerbatim(t *testing.T) {
	bot := newDoctor(t)

	r, err := bot.Reply("")
	require.NoError(t, err)
	assert.Equal(t, "How do you do. Please tell me your problem", r.Text)
	assert.Equal(t, SourceStart, r.Source)
	assert.Equal(t, script.KeywordStart, r.Keyword)
}

func TestChatbot_RotationWrapsAround(t *testing.T) {
	s := testutil.NewScriptBuilder("rotation").
		Start("hi").
		None("go on").
		Keyword("NO", 0).Rule("", "first", "second", "third").
		Build()
	bot, err := New("Rotation", s)
	require.NoError(t, err)

	var got []string
	for i := 0; i < 4; i++ {
		text, err := bot.Respond("no")
		require.NoError(t, err)
		got = append(got, text)
	}
	assert.Equal(t, []string{"first", "second", "third", "first"}, got)
}

func TestChatbot_DoctorNoCycle(t *testing.T) {
	bot := newDoctor(t)

	first, err := bot.Respond("no")
	require.NoError(t, err)
	for i := 0; i < 3; i++ {
		text, err := bot.Respond("no")
		require.NoError(t, err)
		assert.NotEqual(t, first, text)
	}
	fifth, err := bot.Respond("no")
	require.NoError(t, err)
	assert.Equal(t, first, fifth)
}

func TestChatbot_FamilyAndMemory(t *testing.T) {
	bot := newDoctor(t)

	r, err := bot.Reply("my mother is nice")
	require.NoError(t, err)
	assert.Equal(t, "Tell me more about your family", r.Text)
	assert.Equal(t, "MY", r.Keyword)
	assert.Equal(t, SourceRule, r.Source)
	assert.Equal(t, "your mother is nice", r.Sentence)
	assert.Equal(t, []string{"Lets discuss further why your mother is nice"}, bot.Memory())

	r, err = bot.Reply("xyz")
	require.NoError(t, err)
	assert.Equal(t, SourceMemory, r.Source)
	assert.Equal(t, "Lets discuss further why your mother is nice", r.Text)
	assert.Empty(t, bot.Memory())
}

func TestChatbot_NoKeywordUsesNone(t *testing.T) {
	bot := newDoctor(t)

	r, err := bot.Reply("xyz")
	require.NoError(t, err)
	assert.Equal(t, "I am not sure I understand you fully", r.Text)
	assert.Equal(t, SourceDefault, r.Source)
	assert.Empty(t, r.Keystack)

	text, err := bot.Respond("xyz")
	require.NoError(t, err)
	assert.Equal(t, "Please go on", text)
}

func TestChatbot_NewKeyFallsBack(t *testing.T) {
	s := testutil.NewScriptBuilder("newkey").
		Start("hi").
		None("fallback").
		Keyword("SKIP", 0).Rule("", "NEWKEY").
		Build()
	bot, err := New("NewKey", s)
	require.NoError(t, err)

	r, err := bot.Reply("skip this")
	require.NoError(t, err)
	assert.Equal(t, "fallback", r.Text)
	assert.Equal(t, SourceDefault, r.Source)
}

func TestChatbot_NewKeyTriesNextKeyword(t *testing.T) {
	s := testutil.NewScriptBuilder("newkey").
		Start("hi").
		None("fallback").
		Keyword("SKIP", 5).Rule("", "NEWKEY").
		Keyword("NEXT", 0).Rule("", "from next").
		Build()
	bot, err := New("NewKey", s)
	require.NoError(t, err)

	r, err := bot.Reply("next skip")
	require.NoError(t, err)
	assert.Equal(t, []string{"SKIP", "NEXT"}, r.Keystack.Keywords())
	assert.Equal(t, "from next", r.Text)
	assert.Equal(t, "NEXT", r.Keyword)
}

func TestChatbot_RedirectWithPre(t *testing.T) {
	bot := newDoctor(t)

	r, err := bot.Reply("I'm sad")
	require.NoError(t, err)
	assert.Equal(t, "I'M", r.Keystack[0].Keyword)
	assert.Equal(t, "You're sad", r.Sentence)
	// pre rewrites to "You are sad" before continuing with I.
	assert.Equal(t, "Is it because you are sad that you came to me", r.Text)
	assert.Equal(t, "I", r.Keyword)
}

func TestChatbot_SubstitutionIsVerbatim(t *testing.T) {
	s := testutil.NewScriptBuilder("subst").
		Start("hi").
		None("go on").
		Keyword("DONT", 0).Substitution("don't").
		Keyword("ECHO", 0).Rule(`^echo (.*)$`, `\1`).
		Build()
	bot, err := New("Subst", s)
	require.NoError(t, err)

	ks, altered := bot.Scan(Tokenize("ECHO DONT Dont stop"))
	assert.Equal(t, []string{"ECHO"}, ks.Keywords())
	assert.Equal(t, "ECHO don't don't stop", altered)

	got, err := bot.Respond("ECHO DONT stop")
	require.NoError(t, err)
	assert.Equal(t, "don't stop", got)
}

func TestChatbot_FirstSentenceWithKeywordWins(t *testing.T) {
	bot := newDoctor(t)

	r, err := bot.Reply("xyz, sorry about that")
	require.NoError(t, err)
	assert.Equal(t, "SORRY", r.Keyword)
	assert.Equal(t, "Please don't apologize", r.Text)
}

func TestChatbot_RedirectCycleTerminates(t *testing.T) {
	tests := []struct {
		name  string
		build func(b *testutil.ScriptBuilder) *testutil.ScriptBuilder
		input string
	}{
		{
			name: "self redirect",
			build: func(b *testutil.ScriptBuilder) *testutil.ScriptBuilder {
				return b.Keyword("LOOP", 0).Rule("", "=LOOP")
			},
			input: "loop",
		},
		{
			name: "two keywords",
			build: func(b *testutil.ScriptBuilder) *testutil.ScriptBuilder {
				return b.Keyword("PING", 0).Rule("", "=PONG").
					Keyword("PONG", 0).Rule("", "=PING")
			},
			input: "ping",
		},
		{
			name: "three keywords",
			build: func(b *testutil.ScriptBuilder) *testutil.ScriptBuilder {
				return b.Keyword("A", 0).Rule("", "=B").
					Keyword("B", 0).Rule("", "=C").
					Keyword("C", 0).Rule("", "=A")
			},
			input: "a",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			logger := logging.NewLogger(&logging.LoggerConfig{Level: logging.LogLevelWarn, Format: "text", Output: &buf})

			s := tt.build(testutil.NewScriptBuilder("cycle").Start("hi").None("fallback")).Build()
			bot, err := New("Cycle", s, func(o *Options) {
				o.MaxRedirects = 5
				o.Logger = logger
			})
			require.NoError(t, err)

			r, err := bot.Reply(tt.input)
			require.NoError(t, err)
			assert.Equal(t, "fallback", r.Text)
			assert.Equal(t, SourceDefault, r.Source)
			assert.Contains(t, buf.String(), "Redirect limit exceeded")
			assert.Contains(t, buf.String(), "redirects=6")
		})
	}
}

func TestChatbot_MemoryRotatesAndPopsInOrder(t *testing.T) {
	bot := newDoctor(t)

	_, err := bot.Respond("my mother is nice")
	require.NoError(t, err)
	_, err = bot.Respond("my dog is nice")
	require.NoError(t, err)
	assert.Equal(t, []string{
		"Lets discuss further why your mother is nice",
		"Earlier you said your dog is nice",
	}, bot.Memory())

	r, err := bot.Reply("xyz")
	require.NoError(t, err)
	assert.Equal(t, SourceMemory, r.Source)
	assert.Equal(t, "Lets discuss further why your mother is nice", r.Text)

	r, err = bot.Reply("xyz")
	require.NoError(t, err)
	assert.Equal(t, SourceMemory, r.Source)
	assert.Equal(t, "Earlier you said your dog is nice", r.Text)
	assert.Empty(t, bot.Memory())
}

func TestChatbot_MatchTimeoutCountsAsNoMatch(t *testing.T) {
	s := testutil.NewScriptBuilder("timeout").
		Start("hi").
		None("fallback").
		Keyword("A", 0).Rule(`^(\w+\s?)+$`, "matched").
		Build()
	bot, err := New("Timeout", s, func(o *Options) { o.MatchTimeout = 5 * time.Millisecond })
	require.NoError(t, err)

	// The run of a's backtracks exponentially before failing on "!".
	input := "a " + strings.Repeat("a", 40) + " !"
	r, err := bot.Reply(input)
	require.NoError(t, err)
	assert.Equal(t, "fallback", r.Text)
	assert.Equal(t, SourceDefault, r.Source)
}

func TestChatbot_ScanKeepsInvalidUTF8(t *testing.T) {
	bot := newDoctor(t)

	ks, sentence := bot.Scan(Tokenize("\xff\xfe my mother"))
	assert.Equal(t, []string{"MY"}, ks.Keywords())
	assert.Equal(t, "\xff\xfe your mother", sentence)
}

func TestChatbot_NoResponse(t *testing.T) {
	s := testutil.NewScriptBuilder("silent").
		Start("hi").
		Keyword(script.KeywordNone, 0).Rule("^never$", "unreachable").
		Build()
	bot, err := New("Silent", s)
	require.NoError(t, err)

	_, err = bot.Respond("xyz")
	require.Error(t, err)
	assert.True(t, IsNoResponse(err))
}

func TestChatbot_AgentsAreIsolated(t *testing.T) {
	s := script.Doctor()
	a, err := New("A", s)
	require.NoError(t, err)
	b, err := New("B", s)
	require.NoError(t, err)

	first, err := a.Respond("no")
	require.NoError(t, err)
	_, err = a.Respond("no")
	require.NoError(t, err)

	got, err := b.Respond("no")
	require.NoError(t, err)
	assert.Equal(t, first, got)
}
