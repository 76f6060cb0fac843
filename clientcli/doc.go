// Package clientcli provides a client library for text2kv servers.
//
// Reads and writes go through the single GET entry point with the shared
// token as a query parameter. Writes carry either a text or a b64 payload
// and return the value the server read back after storing it.
//
// # Basic Usage
//
//	client, err := clientcli.New(&clientcli.Config{
//		Server: "https://kv.example.com",
//		Token:  "abc123",
//	})
//	if err != nil {
//		log.Fatal(err)
//	}
//
//	_, err = client.Put(ctx, clientcli.PutOptions{Name: "notes", Text: "hello"})
//	result, err := client.Get(ctx, "notes")
//
// # Profile Configuration
//
// Profiles live in ~/.text2kv/config.yaml:
//
//	configFile, err := clientcli.LoadConfigFile(clientcli.DefaultConfigPath())
//	profile, err := configFile.GetProfile("production")
//	client, err := clientcli.New(clientcli.ConfigFromProfile(profile))
package clientcli
