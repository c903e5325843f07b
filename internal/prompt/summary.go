package prompt

// SummaryInstruction is prepended verbatim to every transcript.
const SummaryInstruction = "You are a YouTube video summarizer. You will take the transcript text and summarize the entire video, " +
	"providing the important points in a structured format within 500 words. Please provide the summary of the text given here: "

// BuildSummaryPrompt concatenates the instruction and the transcript. The transcript
// is passed through unmodified, however long it is.
func BuildSummaryPrompt(transcript string) string {
	return SummaryInstruction + transcript
}
