package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/peterkuimelis/quizcards/internal/quiz"
)

// activeSession is the singleton game session (one per stdio process).
var activeSession *GameSession

// questions and seed configure new sessions, set by main.
var (
	questions []quiz.Question
	seed      int64
)

// SetQuestions sets the question bank used by new games.
func SetQuestions(qs []quiz.Question) {
	questions = qs
}

// SetSeed fixes the random seed. Zero means random.
func SetSeed(s int64) {
	seed = s
}

// RegisterTools adds all game tools to the MCP server.
func RegisterTools(s *server.MCPServer) {
	s.AddTool(startGameTool(), handleStartGame)
	s.AddTool(discardCardTool(), handleDiscardCard)
	s.AddTool(answerQuizTool(), handleAnswerQuiz)
	s.AddTool(getGameStateTool(), handleGetGameState)
	s.AddTool(resetGameTool(), handleResetGame)
}

func session() *GameSession {
	if activeSession == nil {
		activeSession = NewGameSession(questions, seed)
	}
	return activeSession
}

// --- Tool definitions ---

func startGameTool() mcp.Tool {
	return mcp.NewTool("start_game",
		mcp.WithDescription("Deal a new quiz card game. You play the human seat against the AI: each round both sides "+
			"discard a card, the higher card wins, and the winner's side faces a quiz question that decides whether a "+
			"reward card is granted. Returns the state and the pending decision. A game in progress is abandoned."),
	)
}

func discardCardTool() mcp.Tool {
	return mcp.NewTool("discard_card",
		mcp.WithDescription("Discard a card from your hand. Use this when the pending decision type is 'choose_discard'."),
		mcp.WithNumber("index", mcp.Required(), mcp.Description("0-based index of the card in your hand")),
	)
}

func answerQuizTool() mcp.Tool {
	return mcp.NewTool("answer_quiz",
		mcp.WithDescription("Answer the pending quiz question. Use this when the pending decision type is 'answer_quiz'. "+
			"When you won the round a correct answer gains the reward; when the AI won a wrong answer hands it the reward."),
		mcp.WithNumber("choice", mcp.Required(), mcp.Description("0-based index of the chosen answer")),
	)
}

func getGameStateTool() mcp.Tool {
	return mcp.NewTool("get_game_state",
		mcp.WithDescription("Get the current game state, accumulated events, and pending decision without submitting a response. Read-only."),
	)
}

func resetGameTool() mcp.Tool {
	return mcp.NewTool("reset_game",
		mcp.WithDescription("Abandon the current game, including any pending quiz, and deal a new one."),
	)
}

// --- Tool handlers ---

func handleStartGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	resp, err := session().Start(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to start game: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleDiscardCard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	index := request.GetInt("index", -1)
	resp, err := activeSession.Discard(ctx, index)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot discard: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleAnswerQuiz(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	choice := request.GetInt("choice", -1)
	resp, err := activeSession.Answer(ctx, choice)
	if err != nil {
		return mcp.NewToolResultErrorf("Cannot answer: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleGetGameState(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp, err := activeSession.Snapshot()
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}

func handleResetGame(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if activeSession == nil {
		return mcp.NewToolResultError("No game is running. Use start_game first."), nil
	}

	resp, err := activeSession.Start(ctx)
	if err != nil {
		return mcp.NewToolResultErrorf("Failed to reset game: %v", err), nil
	}
	return mcp.NewToolResultText(respondJSON(resp)), nil
}
