package cmd

import (
	"encoding/base64"
	"errors"
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pawsitive/mathcat/internal/homework"
	"github.com/pawsitive/mathcat/internal/llm"
)

var homeworkCmd = &cobra.Command{
	Use:   "homework",
	Short: "Get step-by-step help with a homework problem (needs an LLM API key)",
	Long: `Send a photo of a homework problem, a typed question, or both.

The tutor guides you through the steps instead of giving the answer away.
Requires ANTHROPIC_API_KEY, OPENAI_API_KEY, GEMINI_API_KEY or
OPENROUTER_API_KEY (or MATHCAT_LLM_PROVIDER).`,
	RunE: func(cmd *cobra.Command, args []string) error {
		imagePath, _ := cmd.Flags().GetString("image")
		text, _ := cmd.Flags().GetString("text")
		if text == "" && len(args) > 0 {
			text = strings.Join(args, " ")
		}
		if imagePath == "" && strings.TrimSpace(text) == "" {
			return errors.New("give --image, --text or a question")
		}

		req := homework.Request{Text: text}
		if imagePath != "" {
			url, err := imageDataURL(imagePath)
			if err != nil {
				return err
			}
			req.Image = url
		}

		rt, err := setup(cmd, setupOptions{withLLM: true})
		if err != nil {
			return err
		}
		defer rt.Close()

		if rt.homework == nil {
			return errors.New(homework.MsgUnavailable)
		}
		req.UserID = rt.userID

		reply, err := rt.homework.Analyze(cmd.Context(), req)
		if err != nil {
			if he := homework.Classify(err); he != nil {
				return errors.New(he.Message)
			}
			return err
		}
		fmt.Println("🐱", reply)
		return nil
	},
}

func init() {
	homeworkCmd.Flags().String("image", "", "Path to a photo of the problem (jpeg, png, gif, webp)")
	homeworkCmd.Flags().String("text", "", "The question, typed out")
}

// imageDataURL reads an image file into a data URL.
func imageDataURL(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read image: %w", err)
	}
	mime := http.DetectContentType(data)
	if !strings.HasPrefix(mime, "image/") {
		return "", fmt.Errorf("%s does not look like an image (%s)", path, mime)
	}
	img := llm.Image{MediaType: mime, Data: base64.StdEncoding.EncodeToString(data)}
	return img.DataURL(), nil
}
