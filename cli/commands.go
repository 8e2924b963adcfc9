// Package cli implements the command-line client for the blog API.
package cli

import (
	"errors"
	"fmt"

	"weblog/client"
	"weblog/pagination"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const defaultServer = "http://127.0.0.1:3000"

// Commands builds the client subcommands. Each command creates a
// client against --server, loads the saved token, runs, and persists
// any token change.
func Commands() []*cobra.Command {
	var (
		server    string
		tokenFile string
	)

	newClient := func() (*client.Client, *Session) {
		session := NewSession(tokenFile)
		c := client.New(server)
		if token := session.Token(); token != "" {
			c.SetToken(token)
		}
		return c, session
	}

	registerCmd := &cobra.Command{
		Use:   "register",
		Short: "Register a new user and log in",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			email, _ := cmd.Flags().GetString("email")
			password, _ := cmd.Flags().GetString("password")

			c, session := newClient()
			user, err := c.Register(cmd.Context(), username, email, password)
			if err != nil {
				return err
			}
			if err := session.Save(c.Token()); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Registered user %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	registerCmd.Flags().String("username", "", "username")
	registerCmd.Flags().String("email", "", "email address")
	registerCmd.Flags().String("password", "", "password")
	registerCmd.MarkFlagRequired("username")
	registerCmd.MarkFlagRequired("email")
	registerCmd.MarkFlagRequired("password")

	loginCmd := &cobra.Command{
		Use:   "login",
		Short: "Log in and save the auth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")

			c, session := newClient()
			user, err := c.Login(cmd.Context(), username, password)
			if err != nil {
				return err
			}
			if err := session.Save(c.Token()); err != nil {
				return fmt.Errorf("saving token: %w", err)
			}

			fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s (id %d)\n", user.Username, user.ID)
			return nil
		},
	}
	loginCmd.Flags().String("username", "", "username")
	loginCmd.Flags().String("password", "", "password")
	loginCmd.MarkFlagRequired("username")
	loginCmd.MarkFlagRequired("password")

	logoutCmd := &cobra.Command{
		Use:   "logout",
		Short: "Forget the saved auth token",
		RunE: func(cmd *cobra.Command, args []string) error {
			session := NewSession(tokenFile)
			// Removal failure is not critical: the UI state still
			// resets, so log it and move on.
			if err := session.Clear(); err != nil {
				zap.L().Warn("failed to remove token", zap.Error(err))
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}

	createCmd := &cobra.Command{
		Use:   "create-post",
		Short: "Create a post",
		RunE: func(cmd *cobra.Command, args []string) error {
			title, _ := cmd.Flags().GetString("title")
			content, _ := cmd.Flags().GetString("content")
			if title == "" || content == "" {
				return errors.New("title and content must not be empty")
			}

			c, _ := newClient()
			post, err := c.CreatePost(cmd.Context(), title, content)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Created post:")
			ownID, _ := c.CurrentUserID()
			renderPost(cmd.OutOrStdout(), post, ownID)
			return nil
		},
	}
	createCmd.Flags().String("title", "", "post title")
	createCmd.Flags().String("content", "", "post content")
	createCmd.MarkFlagRequired("title")
	createCmd.MarkFlagRequired("content")

	getCmd := &cobra.Command{
		Use:   "get-post",
		Short: "Fetch a single post",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt("id")

			c, _ := newClient()
			post, err := c.GetPost(cmd.Context(), id)
			if err != nil {
				return err
			}

			ownID := -1
			if uid, ok := c.CurrentUserID(); ok {
				ownID = uid
			}
			renderPost(cmd.OutOrStdout(), post, ownID)
			return nil
		},
	}
	getCmd.Flags().Int("id", 0, "post id")
	getCmd.MarkFlagRequired("id")

	listCmd := &cobra.Command{
		Use:   "list-posts",
		Short: "List posts one page at a time",
		RunE: func(cmd *cobra.Command, args []string) error {
			page, _ := cmd.Flags().GetInt("page")
			size, _ := cmd.Flags().GetInt("size")
			if page < 1 {
				page = 1
			}

			c, _ := newClient()
			pager := pagination.New(c, size)
			result, err := pager.Goto(cmd.Context(), page-1)
			if err != nil {
				return err
			}

			ownID := -1
			if uid, ok := c.CurrentUserID(); ok {
				ownID = uid
			}
			renderPage(cmd.OutOrStdout(), result, ownID)
			return nil
		},
	}
	listCmd.Flags().Int("page", 1, "page number (1-based)")
	listCmd.Flags().Int("size", pagination.DefaultPageSize, "posts per page")

	updateCmd := &cobra.Command{
		Use:   "update-post",
		Short: "Update a post you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt("id")

			var title, content *string
			if cmd.Flags().Changed("title") {
				v, _ := cmd.Flags().GetString("title")
				if v == "" {
					return errors.New("title must not be empty")
				}
				title = &v
			}
			if cmd.Flags().Changed("content") {
				v, _ := cmd.Flags().GetString("content")
				if v == "" {
					return errors.New("content must not be empty")
				}
				content = &v
			}
			if title == nil && content == nil {
				return errors.New("nothing to update: pass --title and/or --content")
			}

			c, _ := newClient()
			post, err := c.UpdatePost(cmd.Context(), id, title, content)
			if err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Updated post:")
			ownID, _ := c.CurrentUserID()
			renderPost(cmd.OutOrStdout(), post, ownID)
			return nil
		},
	}
	updateCmd.Flags().Int("id", 0, "post id")
	updateCmd.Flags().String("title", "", "new title")
	updateCmd.Flags().String("content", "", "new content")
	updateCmd.MarkFlagRequired("id")

	deleteCmd := &cobra.Command{
		Use:   "delete-post",
		Short: "Delete a post you own",
		RunE: func(cmd *cobra.Command, args []string) error {
			id, _ := cmd.Flags().GetInt("id")

			c, _ := newClient()
			if err := c.DeletePost(cmd.Context(), id); err != nil {
				return err
			}

			fmt.Fprintln(cmd.OutOrStdout(), "Post deleted")
			return nil
		},
	}
	deleteCmd.Flags().Int("id", 0, "post id")
	deleteCmd.MarkFlagRequired("id")

	cmds := []*cobra.Command{
		registerCmd, loginCmd, logoutCmd,
		createCmd, getCmd, listCmd, updateCmd, deleteCmd,
	}
	for _, cmd := range cmds {
		cmd.Flags().StringVar(&server, "server", defaultServer, "server base URL")
		cmd.Flags().StringVar(&tokenFile, "token-file", "", "path of the saved auth token")
	}
	return cmds
}
