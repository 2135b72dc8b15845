package agent

import (
	"context"
	"fmt"

	"google.golang.org/genai"

	"github.com/jetwong/betbook"
	"github.com/jetwong/betbook/renderer"
)

const model = "gemini-2.5-pro"

func newFacilitator(experts ...*Expert) *Expert {
	return &Expert{
		Name:      "Facilitator",
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(experts)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			As a facilitator you are in charge of the conversation and solving the user's request.

			Learn about the expert's skill that you can get from the Tools to ask them questions.
			They are at your service and 100% dedicated to you, they keep context of your previous questions.

			The user keeps a personal football betting ledger. They are here primarily to review
			their wagers, their bankroll and their performance, and to get information about
			upcoming matches. Remind them to stay within their bankroll; never encourage chasing losses.

			Devise a plan of questions to ask each expert and come up with the best response to the
			user's request.
		`}}},
		},
		Library: NewLibrary(experts),
	}
}

// NewScout is the match information expert, grounded on Google Search.
func NewScout() *Expert {
	return &Expert{
		Name: "Scout",
		Description: `This is an expert football scout.
		Very well aware of teams, leagues, fixtures, injuries and form,
		and of the latest football news. Ask the Scout whenever you need
		recent or grounding information about a match.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{GoogleSearch: &genai.GoogleSearch{}},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
			You are an expert football scout. You can search and find anything related to
			teams, leagues, fixtures, results and football news. You leverage Google Search
			to ground your assertions in a solid truth, and you relate what you find to the
			user's request.
				`}}},
		},
	}
}

// NewBookkeeper is the ledger expert: it reads the user's betting book
// through function tools.
func NewBookkeeper(book *betbook.Book) *Expert {
	lib := []Function{recordsTool(book), summaryTool(book), dailyTool(book)}

	return &Expert{
		Name: "Bookkeeper",
		Description: `This is the Bookkeeper, in charge of reading the user's betting ledger.
		It can list the recorded wagers and compute bankroll and performance figures.`,
		ModelName: model,
		Config: &genai.GenerateContentConfig{
			Tools: []*genai.Tool{
				{FunctionDeclarations: NewDeclaration(lib)},
			},
			SystemInstruction: &genai.Content{Parts: []*genai.Part{{Text: `
				You are a bookkeeper in charge of the user's betting ledger.
				You know how to use the Tools to extract relevant information about the user's
				wagers, bankroll and performance. You are part of a team of experts; yours is
				everything recorded in the ledger. Pardon their approximative language and
				figure out what they meant.

				Use the available tools to get:
				  - the list of recorded wagers
				  - the bankroll and performance summary
				  - the day by day stake and profit
			`}}},
		},
		Library: NewLibrary(lib),
	}
}

func toolError(id, name string, err error) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"error": err.Error(),
		},
	}
}

func toolOutput(id, name, output string) *genai.FunctionResponse {
	return &genai.FunctionResponse{
		ID:   id,
		Name: name,
		Response: map[string]any{
			"output": output,
		},
	}
}

func recordsTool(book *betbook.Book) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Records",
			Description: `Records lists the wagers currently loaded in the user's ledger, newest first.
			It details for each one the match, the bet type, the stake, the odds, the status and the outcome.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted table of the recorded wagers.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			if err := loaded(ctx, book); err != nil {
				return toolError(id, "Records", err)
			}
			return toolOutput(id, "Records", renderer.RecordsMarkdown(book.Records(), book.Total()))
		},
	}
}

func summaryTool(book *betbook.Book) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Summary",
			Description: `Summary computes the user's bankroll and performance figures:
			available bankroll, total stake, total profit, winning rate and losing streak.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted bankroll and performance summary.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			if err := loaded(ctx, book); err != nil {
				return toolError(id, "Summary", err)
			}
			return toolOutput(id, "Summary", renderer.SummaryMarkdown(book.Stats()))
		},
	}
}

func dailyTool(book *betbook.Book) Function {
	return &Func{
		Decl: &genai.FunctionDeclaration{
			Name: "Daily",
			Description: `Daily reports the stake and profit of the user's wagers grouped by calendar day,
			in ascending date order.`,
			Parameters: &genai.Schema{Type: genai.TypeObject},
			Response: &genai.Schema{
				Type:        genai.TypeString,
				Description: "A markdown-formatted day by day table of stake and profit.",
			},
		},
		Func: func(ctx context.Context, id string, args map[string]any) *genai.FunctionResponse {
			if err := loaded(ctx, book); err != nil {
				return toolError(id, "Daily", err)
			}
			return toolOutput(id, "Daily", renderer.DailyMarkdown(book.DailySnapshots()))
		},
	}
}

// loaded makes sure the book holds at least the first page.
func loaded(ctx context.Context, book *betbook.Book) error {
	if len(book.Records()) > 0 {
		return nil
	}
	if err := book.Bootstrap(ctx); err != nil {
		return fmt.Errorf("could not load the ledger: %w", err)
	}
	return nil
}
