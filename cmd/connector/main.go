// The connector is a terminal chat with Pepper: replies come from a local
// Ollama model and are voiced through the bridge when it is up.
package main

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/bridge"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/chat"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/config"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm"
	"github.com/Akshita-sr/pepper-AI-Ollama/pkg/llm/ollama"
)

const (
	farewell = "Goodbye! It was nice talking with you."
	apology  = "I'm sorry, I couldn't process that. Please try again."
)

func main() {
	cfg := config.Load()
	ctx := context.Background()

	llmClient := ollama.New(cfg.OllamaHost, cfg.OllamaModel, cfg.OllamaEmbedModel)

	fmt.Println("Pepper AI Connector")
	fmt.Println("===================")

	models, err := llmClient.Check(ctx)
	if err != nil {
		fmt.Printf("Ollama is not available at %s: %v\n", cfg.OllamaHost, err)
		fmt.Println("Start it with: ollama serve")
		os.Exit(1)
	}
	fmt.Println("Available models:")
	for _, m := range models {
		fmt.Printf("  - %s\n", m.Name)
	}
	fmt.Printf("Using model: %s\n", cfg.OllamaModel)

	bridgeClient := bridge.NewClient(cfg.BridgeURL)
	bridgeUp := bridgeClient.Available(ctx)
	if bridgeUp {
		fmt.Println("Pepper bridge connected - responses will be spoken")
	} else {
		fmt.Println("Pepper bridge not reachable - responses will be text only")
	}

	fmt.Println("\nType your message (or 'quit' to exit):")

	var speak speakFunc
	if bridgeUp {
		speak = bridgeClient.Speak
	}

	var history []chat.Message
	scanner := bufio.NewScanner(os.Stdin)
	for {
		fmt.Print("\nYou: ")
		if !scanner.Scan() {
			break
		}
		input := strings.TrimSpace(scanner.Text())
		if input == "" {
			continue
		}
		if isExit(input) {
			fmt.Println("Pepper: " + farewell)
			if speak != nil {
				_ = speak(ctx, farewell)
			}
			return
		}

		var line string
		var speakErr error
		history, line, speakErr = runTurn(ctx, llmClient, speak, history, input)
		fmt.Println("Pepper: " + line)
		if speakErr != nil {
			fmt.Println("(bridge unavailable, continuing in text mode)")
			speak = nil
		}
	}
}

type speakFunc func(ctx context.Context, text string) error

// runTurn produces Pepper's reply for one input and voices it when speak is
// set. A generation failure yields the apology (also spoken, so the robot is
// not left silent) and leaves the history untouched.
func runTurn(ctx context.Context, model llm.ChatModel, speak speakFunc, history []chat.Message, input string) ([]chat.Message, string, error) {
	reply, err := model.Generate(ctx, chat.BuildPrompt(history, input), llm.GenerateOptions{
		Temperature: 0.7,
		MaxTokens:   500,
	})
	if err != nil {
		var speakErr error
		if speak != nil {
			speakErr = speak(ctx, apology)
		}
		return history, apology, speakErr
	}
	reply = strings.TrimSpace(reply)

	history = append(history,
		chat.Message{Role: chat.RoleUser, Content: input},
		chat.Message{Role: chat.RoleAssistant, Content: reply},
	)

	var speakErr error
	if speak != nil {
		speakErr = speak(ctx, reply)
	}
	return history, reply, speakErr
}

func isExit(input string) bool {
	switch strings.ToLower(input) {
	case "quit", "exit", "bye":
		return true
	}
	return false
}
