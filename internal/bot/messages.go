package bot

const msgHelp = `I turn multiple-choice questions into Telegram quiz polls.

Send me a .txt file or a message with questions like this:

What is 2+2?
A) 3
B) 4
C) 5
D) 6
Correct: B
Explanation: Basic arithmetic.

Separate questions with a blank line, or start each one with "Q:" / "Question 1:".
The answer may be a letter (A-D) or a number (1-4).

Commands:
/quiz - a random question from the default set
/sets - your uploaded sets
/play <id> - send a saved set again
/delete <id> - delete one of your sets
/export [csv] [id] - download questions as text or CSV
/score - your answers so far
/top - leaderboard
/reload - reload the default question file (admins)`

const msgEmptyBank = `There are no questions loaded yet.`

const msgNoQuestions = `No valid questions found.`

const msgReloadFailed = `Failed to reload questions.`

const msgReloaded = `Loaded %d questions.`

const msgReloadedSkipped = `Loaded %d questions, skipped %d malformed blocks.`

const msgNotText = `Please send a plain text (.txt) file.`

const msgFileTooLarge = `The file is too large, the limit is %d KB.`

const msgDownloadFailed = `Failed to download the file, please try again.`

const msgDispatched = `Sent %d of %d questions.`

const msgDispatchFailed = ` Failed: %d.`

const msgDispatchSkipped = ` Skipped blocks: %d.`

const msgSetSaved = "\nSaved as set %s, replay it with /play %s"

const msgSaveFailed = `Failed to save the question set.`

const msgNoSets = `You have no saved sets. Send me a file with questions.`

const msgSetsHeader = `Your sets:`

const msgSetLine = "%s %s (%d questions)"

const msgUsagePlay = `Usage: /play <set id>`

const msgUsageDelete = `Usage: /delete <set id>`

const msgBadSetID = `This is not a valid set id.`

const msgUnknownSet = `Set not found.`

const msgNotYourSet = `You can only delete your own sets.`

const msgSetDeleted = `Set deleted.`

const msgStorageFailed = `Storage is unavailable, please try again later.`

const msgExportFailed = `Failed to export questions.`

const msgNoScore = `You have not answered any quiz yet.`

const msgScore = `Answered: %d, correct: %d.`

const msgNoLeaders = `Nobody has answered yet.`

const msgLeaderLine = `%d. %s - %d/%d`

const msgForbidden = `This command is for admins only.`

const msgUnknownText = `I could not find any questions in this message. Send /help to see the format.`
