// Package conversation runs turn based conversations between participants.
//
// A Participant is anything that answers a message: an ELIZA chatbot
// (FromChatbot), a canned list of lines (Scripted) or a language model
// (see the model package). GroupChat passes every reply on to the next
// participant round-robin, starting with an empty message to the first
// one so that chatbots answer with their greeting:
//
//	therapist, _ := eliza.New(func(o *eliza.Options) { o.Name = "Therapist" })
//	patient := conversation.Scripted("Patient", "I feel tired", "My mother worries me")
//	chat, _ := conversation.NewGroupChat([]conversation.Participant{conversation.FromChatbot(therapist), patient})
//
//	err := conversation.Loop(ctx, chat, func(t conversation.Turn) error {
//		fmt.Printf("%s: %s\n", t.Speaker, t.Text)
//		return nil
//	}, conversation.WithMaxTurns(10))
//
// A participant ends the conversation by returning ErrEnd.
package conversation
