package ui

import (
	"github.com/pushpitasaha/thinkbot-AI/model"
)

// Message type aliases so rendering code reads naturally
type Message = model.Message

type turnResultMsg = model.TurnResultMsg
type historyFetchedMsg = model.HistoryFetchedMsg
type conversationLoadedMsg = model.ConversationLoadedMsg
type conversationsDeletedMsg = model.ConversationsDeletedMsg
type attachmentLoadedMsg = model.AttachmentLoadedMsg
type markdownRenderedMsg = model.MarkdownRenderedMsg
