package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:8002"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{}
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func uploadAudio(sessionId, wavPath string) (*http.Response, []byte, error) {
	var buf bytes.Buffer
	w := multipart.NewWriter(&buf)

	fw, err := w.CreateFormFile("audio", "utterance.wav")
	if err != nil {
		return nil, nil, err
	}
	data, err := os.ReadFile(wavPath)
	if err != nil {
		return nil, nil, err
	}
	if _, err := fw.Write(data); err != nil {
		return nil, nil, err
	}
	w.Close()

	req, err := http.NewRequest("POST", baseURL+"/api/session/v1/"+sessionId+"/voice", &buf)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", w.FormDataContentType())

	resp, err := (&http.Client{}).Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting conversation capture smoke test\n")

	// 1. Health check
	color.Yellow("\n1. Health check")
	resp, body, err := sendRequest("GET", "/", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	// 2. Start a session
	color.Yellow("\n2. Start session")
	resp, body, err = sendRequest("POST", "/api/session/v1/start", map[string]interface{}{})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	var startResp struct {
		Data struct {
			SessionId string `json:"session_id"`
		} `json:"data"`
	}
	json.Unmarshal(body, &startResp)
	sessionId := startResp.Data.SessionId
	color.Green("Session: %s", sessionId)

	// 3. Submit an utterance if a sample wav was provided
	if len(os.Args) > 1 {
		color.Yellow("\n3. Submit utterance (%s)", os.Args[1])
		resp, body, err = uploadAudio(sessionId, os.Args[1])
		if err != nil {
			color.Red("Failed: %v", err)
			os.Exit(1)
		}
		color.Green("Status: %s", resp.Status)
		var voiceResp map[string]interface{}
		json.Unmarshal(body, &voiceResp)
		prettyPrint(voiceResp)
	} else {
		color.Yellow("\n3. Skipping utterance upload (pass a wav path as argument)")
	}

	// 4. Fetch the transcript
	color.Yellow("\n4. Fetch transcript")
	resp, body, err = sendRequest("GET", "/api/session/v1/"+sessionId+"/conversation", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var convResp map[string]interface{}
	json.Unmarshal(body, &convResp)
	prettyPrint(convResp)

	// 5. Generate a SOAP note (degrades to fallback with no LLM configured)
	color.Yellow("\n5. Generate SOAP note")
	resp, body, err = sendRequest("POST", "/api/soap/v1/generate", map[string]interface{}{
		"session_id":   sessionId,
		"patient_name": "Smoke Test Patient",
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var soapResp map[string]interface{}
	json.Unmarshal(body, &soapResp)
	prettyPrint(soapResp)

	// 6. Stop the session
	color.Yellow("\n6. Stop session")
	resp, _, err = sendRequest("POST", "/api/session/v1/stop", map[string]interface{}{
		"session_id": sessionId,
	})
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)

	color.Cyan("\n✅ Smoke test finished")
}
