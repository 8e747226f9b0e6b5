package cli

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/deepinsight/backend/pkg/client"
	"github.com/dustin/go-humanize"
	"github.com/spf13/cobra"
)

func newUploadCmd(a *app) *cobra.Command {
	return &cobra.Command{
		Use:   "upload FILE",
		Short: "Upload an image for use in a post (admin)",
		Long:  "Upload a JPEG, PNG, WebP or GIF image of at most 5 MB and print its URL.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			f, err := os.Open(args[0])
			if err != nil {
				return err
			}
			defer f.Close()
			info, err := f.Stat()
			if err != nil {
				return err
			}
			if info.Size() > client.MaxImageSize {
				return fmt.Errorf("%s is %s, the limit is %s", args[0],
					humanize.IBytes(uint64(info.Size())), humanize.IBytes(client.MaxImageSize))
			}

			c, err := a.client(cmd)
			if err != nil {
				return err
			}
			s, err := session(cmd.Context(), c)
			if err != nil {
				return err
			}
			img, err := c.UploadImage(cmd.Context(), s, filepath.Base(args[0]), f)
			if err != nil {
				return err
			}
			return a.render(cmd.OutOrStdout(), img, func(w io.Writer) {
				fmt.Fprintln(w, img.URL)
			})
		},
	}
}
