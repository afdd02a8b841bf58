// messages.go contains message templates for the terminal.

package terminal

const (
	logo = `
  .---.   ___  ___  ___     .--.
 / .-, \ (   )(   )(   )  /  _  \
(__) ; |  | |  | |  | |  . .' ` + "`" + `. ;
  .'` + "`" + `  |  | |  | |  | |  | '   | |
 / .'| |  | |  | |  | |  _\_` + "`" + `.(___)
| /  | |  | |  | |  | | (   ). '.
; |  ; |  | |  ; '  | |  | |  ` + "`" + `\ |
' ` + "`" + `-'  |  ' ` + "`" + `-'   ` + "`" + `-' '  ; '._,' '
` + "`" + `.__.'_.   '.__.'.__.'    '.___.'
`
	subtitle = "Cloud Practitioner Quiz"
)

// Prompts and status lines.
const (
	msgLoading        = "Loading questions...\nPlease wait..."
	msgInitialized    = "Initialized: %d questions"
	msgStartPrompt    = "Press %s to start or type %s to quit."
	msgQuestionID     = "Question ID:"
	msgAnswerPrompt   = "Answer: "
	msgCorrect        = "Correct!"
	msgIncorrect      = "Incorrect!"
	msgCorrectAnswers = "Correct answer(s): %s"
	msgContinue       = "Press %s to continue..."
	msgAllAnswered    = "All questions have been answered! Press %s to restart or %s to quit."
	msgReloading      = "Reloading questions..."
	msgProgressLabel  = "Progress: "
	msgCorrectLabel   = "Correct:  "
)

// Error messages.
const (
	msgNotSaved     = "Warning: progress could not be saved, it is kept for this run only."
	msgReloadFailed = "Could not reload questions: %v"
)

const (
	keyEnter   = "⏎ enter"
	keyQuit    = ":q⏎"
	keyRestart = ":r⏎"
)
