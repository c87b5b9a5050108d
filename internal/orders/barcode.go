package orders

import (
	"fmt"
	"math/rand/v2"
	"time"
)

// GenerateBarcode: insan tarafından okunabilir sipariş kodu. Monoton zaman
// bileşeni + rastgele son ek; tekillik veritabanındaki unique index ile
// garanti altına alınır, çakışmada kayıt reddedilir.
func GenerateBarcode() string {
	return fmt.Sprintf("BL%d%03d", time.Now().UnixMilli(), rand.IntN(1000))
}
