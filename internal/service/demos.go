package service

import "strings"

// Built-in transcripts usable as ingest input without a file upload.
var demoChats = map[string]string{
	"family_chat": `01/01/24, 10:00 AM - Alice: Hey Bob! What's for dinner tonight?
01/01/24, 10:05 AM - Bob: I was thinking pizza, but open to suggestions!
01/01/24, 10:10 AM - Alice: Pizza sounds great! Or maybe some pasta?
01/01/24, 10:15 AM - Bob: Pasta is good too! Let's do pasta then. I'll start prepping.
01/01/24, 10:20 AM - Alice: Perfect, I'll set the table. Do we have enough garlic bread?
01/01/24, 10:25 AM - Bob: Yep, just checked! Plenty for both of us.
01/01/24, 10:30 AM - Alice: Awesome! Can't wait.
01/01/24, 10:35 AM - Bob: Me neither! Almost done with the sauce.`,

	"work_discussion": `02/01/24, 09:00 AM - Project Lead: Sarah, quick sync on the Q2 report.
02/01/24, 09:05 AM - Sarah: Got it. I've updated the marketing section.
02/01/24, 09:10 AM - Project Lead: Excellent. Can you share the presentation draft by EOD?
02/01/24, 09:15 AM - Sarah: Will do! I'm just polishing the executive summary.
02/01/24, 09:20 AM - Project Lead: Sounds good. Let me know if you run into any roadblocks.
02/01/24, 09:25 AM - Sarah: Will do, thanks! I'm on track for the deadline.
02/01/24, 09:30 AM - Project Lead: Great to hear. Looking forward to reviewing it.
02/01/24, 09:35 AM - Sarah: Thanks! I'll send it over as soon as it's finalized.`,

	"study_chat": `03/01/24, 02:00 PM - John: Hey Emily, are you free to study for the chemistry exam later?
03/01/24, 02:05 PM - Emily: Hi John! Yes, I was just about to text you. How about 4 PM at the library?
03/01/24, 02:10 PM - John: 4 PM works perfectly for me. Should we focus on organic chemistry first?
03/01/24, 02:15 PM - Emily: Good idea, that's where I'm struggling the most. I'll bring my notes on reactions.
03/01/24, 02:20 PM - John: Perfect! I'll review the acids and bases section before then.
03/01/24, 02:25 PM - Emily: Sounds like a plan. See you there!
03/01/24, 02:30 PM - John: See you, Emily! Don't forget your calculator.
03/01/24, 02:35 PM - Emily: Oh, good call! Almost forgot. Thanks!`,
}

// Listing order for the demo picker.
var demoOrder = []string{"family_chat", "work_discussion", "study_chat"}

// DemoInfo describes one built-in transcript.
type DemoInfo struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// ListDemos returns the available demos with display names derived from
// their ids ("family_chat" → "Family Chat").
func ListDemos() []DemoInfo {
	demos := make([]DemoInfo, 0, len(demoOrder))
	for _, id := range demoOrder {
		demos = append(demos, DemoInfo{ID: id, Name: demoDisplayName(id)})
	}
	return demos
}

func demoDisplayName(id string) string {
	words := strings.Split(id, "_")
	for i, w := range words {
		if w != "" {
			words[i] = strings.ToUpper(w[:1]) + w[1:]
		}
	}
	return strings.Join(words, " ")
}
