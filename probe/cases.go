package probe

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"unicode"

	"github.com/kbukum/promptprobe/llm"
)

// Prompts sent by the probes.
const (
	ProgrammingSystem = "You are a helpful programming assistant."
	FunctionSystem    = "You are a helpful assistant that can call functions."
	AssistantSystem   = "You are a helpful assistant."
	StructuredSystem  = "You are a helpful assistant that provides structured information in JSON format."

	BubbleSortPrompt = "Write a bubble sort implementation in Python with comments explaining how it works"
	WeatherPrompt    = "What's the weather like in San Francisco?"
	StoryPrompt      = "Write a short story about robots."
	MoviePrompt      = "Analyze the following text and extract key information in JSON format: " +
		"'The movie Inception, directed by Christopher Nolan and released in 2010, stars " +
		"Leonardo DiCaprio and Ellen Page. It's a science fiction thriller about dreams within dreams.'"
	ProfilePrompt = "Create a JSON object with your name, age, and favorite color. " +
		"Use realistic values and return it as JSON."
)

// Tool names.
const (
	WeatherTool = "get_weather"
	MovieTool   = "extract_movie_info"
)

// WeatherFunction declares get_weather(location, unit).
var WeatherFunction = llm.FunctionTool(WeatherTool, "Get the current weather for a location", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"location": map[string]any{
			"type":        "string",
			"description": "The city and state, e.g. San Francisco, CA",
		},
		"unit": map[string]any{
			"type":        "string",
			"enum":        []string{"celsius", "fahrenheit"},
			"description": "The temperature unit to use",
		},
	},
	"required": []string{"location"},
})

// MovieFunction declares extract_movie_info with every field required.
var MovieFunction = llm.FunctionTool(MovieTool, "Extract structured information about a movie from text", map[string]any{
	"type": "object",
	"properties": map[string]any{
		"title":    map[string]any{"type": "string", "description": "The title of the movie"},
		"director": map[string]any{"type": "string", "description": "The director of the movie"},
		"year":     map[string]any{"type": "integer", "description": "The release year of the movie"},
		"genre":    map[string]any{"type": "string", "description": "The genre of the movie"},
		"main_actors": map[string]any{
			"type":        "array",
			"items":       map[string]any{"type": "string"},
			"description": "List of main actors in the movie",
		},
		"plot_summary": map[string]any{"type": "string", "description": "Brief summary of the movie plot"},
	},
	"required": []string{"title", "director", "year", "genre", "main_actors", "plot_summary"},
})

// WeatherArgs are the arguments of a get_weather call.
type WeatherArgs struct {
	Location string `json:"location"`
	Unit     string `json:"unit"`
}

// GetWeather is the local stand-in the function-calling probe answers with.
func GetWeather(location, unit string) string {
	if unit == "" {
		unit = "celsius"
	}
	symbol := unicode.ToUpper([]rune(unit)[0])
	return fmt.Sprintf("Weather in %s: 22°%c and sunny", location, symbol)
}

func conversation(system, user string) []llm.Message {
	return []llm.Message{
		{Role: llm.RoleSystem, Content: system},
		{Role: llm.RoleUser, Content: user},
	}
}

func runBaseCase(ctx context.Context, s *Suite) error {
	_, err := s.stream(ctx, llm.CompletionRequest{
		Messages: conversation(ProgrammingSystem, BubbleSortPrompt),
	})
	return err
}

func runParameterCase(ctx context.Context, s *Suite) error {
	_, err := s.stream(ctx, llm.CompletionRequest{
		Messages: conversation(AssistantSystem, StoryPrompt),
	})
	return err
}

func runFunctionCalling(ctx context.Context, s *Suite) error {
	messages := conversation(FunctionSystem, WeatherPrompt)
	resp, err := s.exec.Execute(ctx, llm.CompletionRequest{
		Messages:   messages,
		Tools:      []llm.Tool{WeatherFunction},
		ToolChoice: llm.ToolChoiceAuto,
	})
	if err != nil {
		return err
	}
	if len(resp.ToolCalls) == 0 {
		s.println(resp.Content)
		return nil
	}

	for _, call := range resp.ToolCalls {
		if call.Function.Name != WeatherTool {
			continue
		}
		var args WeatherArgs
		if err := call.Function.DecodeArguments(&args); err != nil {
			return fmt.Errorf("decode %s arguments: %w", WeatherTool, err)
		}
		followUp := append(messages[:len(messages):len(messages)],
			llm.Message{Role: llm.RoleAssistant, ToolCalls: []llm.ToolCall{call}},
			llm.Message{Role: llm.RoleTool, Content: GetWeather(args.Location, args.Unit), ToolCallID: call.ID},
		)
		final, err := s.exec.Execute(ctx, llm.CompletionRequest{Messages: followUp})
		if err != nil {
			return err
		}
		s.println(final.Content)
	}
	return nil
}

func runStructuredOutput(ctx context.Context, s *Suite) error {
	resp, err := s.exec.Execute(ctx, llm.CompletionRequest{
		Messages:       conversation(StructuredSystem, MoviePrompt),
		ResponseFormat: llm.JSONObject,
		Tools:          []llm.Tool{MovieFunction},
		ToolChoice:     llm.ForceTool(MovieTool),
	})
	if err != nil {
		return err
	}
	if len(resp.ToolCalls) == 0 {
		s.println("No structured output received")
		s.printf("Response: %s\n", resp.Content)
		return nil
	}

	for _, call := range resp.ToolCalls {
		if call.Function.Name != MovieTool {
			continue
		}
		var args map[string]any
		if err := call.Function.DecodeArguments(&args); err != nil {
			return fmt.Errorf("decode %s arguments: %w", MovieTool, err)
		}
		s.println("=== Extracted Movie Information ===")
		s.printf("Title: %s\n", field(args, "title"))
		s.printf("Director: %s\n", field(args, "director"))
		s.printf("Year: %s\n", field(args, "year"))
		s.printf("Genre: %s\n", field(args, "genre"))
		s.printf("Main Actors: %s\n", joinList(args["main_actors"]))
		s.printf("Plot Summary: %s\n", field(args, "plot_summary"))

		raw, err := json.MarshalIndent(args, "", "  ")
		if err != nil {
			return err
		}
		s.println("\n=== Raw JSON Response ===")
		s.println(string(raw))
	}
	return nil
}

func runSimpleStructuredOutput(ctx context.Context, s *Suite) error {
	resp, err := s.exec.Execute(ctx, llm.CompletionRequest{
		Messages:       []llm.Message{{Role: llm.RoleUser, Content: ProfilePrompt}},
		ResponseFormat: llm.JSONObject,
	})
	if err != nil {
		return err
	}
	s.printf("Response: %s\n", resp.Content)

	// json_object replies sometimes still arrive fenced or wrapped in prose.
	var parsed bytes.Buffer
	if json.Indent(&parsed, []byte(llm.ExtractJSON(resp.Content)), "", "  ") == nil {
		s.println("\n=== Parsed JSON ===")
		s.println(parsed.String())
	}
	return nil
}

// field formats args[key], or "N/A" when it is absent.
func field(args map[string]any, key string) string {
	v, ok := args[key]
	if !ok || v == nil {
		return "N/A"
	}
	return fmt.Sprint(v)
}

func joinList(v any) string {
	items, _ := v.([]any)
	parts := make([]string, 0, len(items))
	for _, item := range items {
		parts = append(parts, fmt.Sprint(item))
	}
	return strings.Join(parts, ", ")
}
